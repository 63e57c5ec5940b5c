package registry

// Advisor keys of the built-in panel.
const (
	KeyElon   = "elon"
	KeyWarren = "warren"
	KeyPeter  = "peter"
	KeySteve  = "steve"
)

// DefaultAdvisors is the built-in panel in canonical order.
func DefaultAdvisors() []AdvisorDescriptor {
	return []AdvisorDescriptor{
		{
			Key:          KeyElon,
			DisplayName:  "Elon Musk",
			EndpointURL:  "https://0xf3402fdc5684b8cd331b09a37caa176ce7efb686.gaia.domains/v1/chat/completions",
			Perspective:  "Innovation, scaling, and disruptive technology",
			Expertise:    "Innovation & Scaling",
			Emoji:        "🚀",
			SectionLabel: "Innovation & Scaling Perspective",
			InsightLabel: "Innovation Perspective",
		},
		{
			Key:          KeyWarren,
			DisplayName:  "Warren Buffet",
			EndpointURL:  "https://0xfd0ca669e92e705d337f05d8f5f12c4d0b9dfb9d.gaia.domains/v1/chat/completions",
			Perspective:  "Business fundamentals and long-term value",
			Expertise:    "Business Fundamentals",
			Emoji:        "💰",
			SectionLabel: "Business Fundamentals Perspective",
			InsightLabel: "Business Perspective",
		},
		{
			Key:          KeyPeter,
			DisplayName:  "Peter Thiel",
			EndpointURL:  "https://0x7a967b4b6b1f82c6d3a4a53d2e28eae596d8d6d9.gaia.domains/v1/chat/completions",
			Perspective:  "Zero-to-one innovation and monopoly strategy",
			Expertise:    "Strategy & Monopoly",
			Emoji:        "🎯",
			SectionLabel: "Strategic Monopoly Perspective",
			InsightLabel: "Strategic Perspective",
		},
		{
			Key:          KeySteve,
			DisplayName:  "Steve Jobs",
			EndpointURL:  "https://0x30650e408f4e4307cbda0a12070aaacd8f2d743f.gaia.domains/v1/chat/completions",
			Perspective:  "Design excellence and user experience",
			Expertise:    "Design & Experience",
			Emoji:        "🎨",
			SectionLabel: "Design Excellence Perspective",
			InsightLabel: "Design Perspective",
		},
	}
}

// Default returns a Registry holding the built-in panel.
func Default() *Registry {
	r, err := New(DefaultAdvisors())
	if err != nil {
		panic(err)
	}
	return r
}
