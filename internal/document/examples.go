package document

var examplePrompts = []string{
	"A social media app for pet owners to share photos, get veterinary advice, and connect with local pet services and other pet owners in their area",
	"An AI-powered fitness coach that provides personalized workout plans, tracks progress with computer vision, and adapts routines based on user feedback and biometric data",
	"A sustainable food delivery platform that connects consumers directly with local farms, reduces food waste through dynamic pricing, and uses electric vehicles for delivery",
	"A VR collaboration tool for remote teams featuring spatial computing, realistic avatars, interactive whiteboards, and seamless integration with existing productivity tools",
	"A personal finance app that uses AI to analyze spending patterns, automatically optimize investments, provide tax advice, and help users achieve specific financial goals",
}

// Example is a canned product idea with its short label.
type Example struct {
	Label string `json:"label"`
	Idea  string `json:"idea"`
}

// ExamplePrompts returns the canned product ideas offered to new users.
func ExamplePrompts() []Example {
	out := make([]Example, 0, len(examplePrompts))
	for _, idea := range examplePrompts {
		out = append(out, Example{Label: ExampleLabel(idea), Idea: idea})
	}
	return out
}

// ExampleLabel shortens text to 50 characters, marking the cut with "...".
func ExampleLabel(text string) string {
	short := truncateRunes(text, 50)
	if short != text {
		return short + "..."
	}
	return text
}
