// pkg/registry/schema.go
package registry

// AdvisorRegistry is the on-disk form of the advisor registry. Advisor order is
// the canonical order used when documents are assembled.
type AdvisorRegistry struct {
	Version     string              `json:"version"`
	LastUpdated string              `json:"lastUpdated"`
	Advisors    []AdvisorDescriptor `json:"advisors"`
}

// AdvisorDescriptor pairs a persona with the endpoint that impersonates it.
type AdvisorDescriptor struct {
	Key          string `json:"key" yaml:"key"`
	DisplayName  string `json:"displayName" yaml:"displayName"`
	EndpointURL  string `json:"endpointUrl" yaml:"endpointUrl"`
	Perspective  string `json:"perspective" yaml:"perspective"`
	Expertise    string `json:"expertise,omitempty" yaml:"expertise,omitempty"`
	Emoji        string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	SectionLabel string `json:"sectionLabel,omitempty" yaml:"sectionLabel,omitempty"`
	InsightLabel string `json:"insightLabel,omitempty" yaml:"insightLabel,omitempty"`
}

const registrySchema = `{
  "type": "object",
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "advisors": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "key": {"type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$"},
          "displayName": {"type": "string", "minLength": 1},
          "endpointUrl": {"type": "string", "pattern": "^https?://"},
          "perspective": {"type": "string", "minLength": 1},
          "expertise": {"type": "string"},
          "emoji": {"type": "string"},
          "sectionLabel": {"type": "string"},
          "insightLabel": {"type": "string"}
        },
        "required": ["key", "displayName", "endpointUrl", "perspective"]
      }
    }
  },
  "required": ["advisors"]
}`
