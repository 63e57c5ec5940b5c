// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	commonerrors "prd-advisors/internal/common/errors"
	"prd-advisors/internal/common/validation"
)

var ErrDuplicateKey = errors.New("DUPLICATE_ADVISOR_KEY")

var compiledSchema = validation.MustCompile(registrySchema)

// Registry is the read-only advisor lookup built once at process start.
type Registry struct {
	order []string
	byKey map[string]AdvisorDescriptor
}

// New builds a Registry from descriptors in canonical order.
func New(advisors []AdvisorDescriptor) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(advisors)),
		byKey: make(map[string]AdvisorDescriptor, len(advisors)),
	}
	for _, a := range advisors {
		if a.Key == "" {
			return nil, fmt.Errorf("advisor %q has an empty key", a.DisplayName)
		}
		if _, exists := r.byKey[a.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, a.Key)
		}
		if a.SectionLabel == "" {
			a.SectionLabel = "Perspective"
		}
		if a.InsightLabel == "" {
			a.InsightLabel = a.SectionLabel
		}
		r.order = append(r.order, a.Key)
		r.byKey[a.Key] = a
	}
	return r, nil
}

// Lookup returns the descriptor for key.
func (r *Registry) Lookup(key string) (AdvisorDescriptor, bool) {
	a, ok := r.byKey[key]
	return a, ok
}

// Keys returns advisor keys in canonical order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Advisors returns descriptors in canonical order.
func (r *Registry) Advisors() []AdvisorDescriptor {
	out := make([]AdvisorDescriptor, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.byKey[k])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

// LoadRegistry reads and validates a registry file.
func LoadRegistry(path string) (*AdvisorRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

// ParseRegistry validates data against the registry schema and decodes it.
func ParseRegistry(data []byte) (*AdvisorRegistry, error) {
	res, err := compiledSchema.ValidateBytes(data)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, commonerrors.NewRegistryInvalidError(res.Summary())
	}

	var reg AdvisorRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// SaveRegistry writes reg as indented JSON.
func SaveRegistry(path string, reg *AdvisorRegistry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FromFile loads a registry file into a Registry, or returns Default when path is empty.
func FromFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	reg, err := LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load advisor registry %s: %w", path, err)
	}
	return New(reg.Advisors)
}
