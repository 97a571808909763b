package tagpolicy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// categoryAll in a vocabulary entry's category list expands to every
// recognized category.
const categoryAll = "all"

// policyFile is the YAML schema for one policy version. Entries repeat a
// field to give it disjoint per-category allowed sets (fit, silhouette).
type policyFile struct {
	Version    string            `yaml:"version"`
	Vocabulary []vocabularyEntry `yaml:"vocabulary"`
	Thresholds []thresholdEntry  `yaml:"thresholds"`
	Conflicts  []ConflictPair    `yaml:"conflicts"`
}

type vocabularyEntry struct {
	Field       Field       `yaml:"field"`
	Categories  []string    `yaml:"categories"`
	Allowed     []string    `yaml:"allowed"`
	Cardinality Cardinality `yaml:"cardinality"`
	// Required is a pointer so a scope-widening repeat entry may omit it
	// without contradicting the defining entry.
	Required *bool `yaml:"required"`
}

type thresholdEntry struct {
	Field              Field             `yaml:"field"`
	AutoApproveAt      float64           `yaml:"auto_approve_at"`
	AllowAt            float64           `yaml:"allow_at"`
	Fallback           string            `yaml:"fallback"`
	FallbackByCategory map[string]string `yaml:"fallback_by_category"`
}

// ParsePolicyYAML decodes and validates one policy version. The returned
// Policy is ready to hand to NewEngine.
func ParsePolicyYAML(data []byte) (*Policy, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, NewConfigError("", "policy", "payload is empty")
	}
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, NewConfigError("", "policy", fmt.Sprintf("decode: %v", err))
	}

	type fieldDefinition struct {
		cardinality Cardinality
		required    bool
	}

	vocab := NewVocabulary()
	seen := make(map[Field]fieldDefinition)
	for _, entry := range file.Vocabulary {
		if !knownField(entry.Field) {
			return nil, NewConfigError(file.Version, "vocabulary", fmt.Sprintf("unknown field %q", entry.Field))
		}
		categories, err := expandCategories(file.Version, entry.Categories)
		if err != nil {
			return nil, err
		}
		required := entry.Required != nil && *entry.Required
		if first, ok := seen[entry.Field]; ok {
			// Repeated entries only widen the category scope; they may omit
			// cardinality and required but never contradict them.
			if entry.Cardinality != (Cardinality{}) && entry.Cardinality != first.cardinality {
				return nil, NewConfigError(file.Version, "vocabulary", fmt.Sprintf("field %s: cardinality differs between entries", entry.Field))
			}
			if entry.Required != nil && required != first.required {
				return nil, NewConfigError(file.Version, "vocabulary", fmt.Sprintf("field %s: required flag differs between entries", entry.Field))
			}
		} else {
			seen[entry.Field] = fieldDefinition{cardinality: entry.Cardinality, required: required}
			vocab.Define(entry.Field, entry.Cardinality.Min, entry.Cardinality.Max, required)
		}
		vocab.Allow(entry.Field, categories, entry.Allowed...)
	}

	thresholds := make(Thresholds, len(file.Thresholds))
	for _, entry := range file.Thresholds {
		if !knownField(entry.Field) {
			return nil, NewConfigError(file.Version, "thresholds", fmt.Sprintf("unknown field %q", entry.Field))
		}
		if _, ok := thresholds[entry.Field]; ok {
			return nil, NewConfigError(file.Version, "thresholds", fmt.Sprintf("field %s: duplicate entry", entry.Field))
		}
		var byCategory map[ItemCategory]string
		if len(entry.FallbackByCategory) > 0 {
			byCategory = make(map[ItemCategory]string, len(entry.FallbackByCategory))
			for name, value := range entry.FallbackByCategory {
				c := ItemCategory(name)
				if !c.Valid() {
					return nil, NewConfigError(file.Version, "thresholds", fmt.Sprintf("field %s: unknown category %q", entry.Field, name))
				}
				byCategory[c] = value
			}
		}
		thresholds[entry.Field] = ThresholdEntry{
			AutoApproveAt:      entry.AutoApproveAt,
			AllowAt:            entry.AllowAt,
			Fallback:           entry.Fallback,
			FallbackByCategory: byCategory,
		}
	}

	policy := &Policy{
		Version:    file.Version,
		Vocabulary: vocab,
		Thresholds: thresholds,
		Conflicts:  ConflictTable(file.Conflicts),
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

// LoadPolicyFile reads a policy version from a YAML file on disk.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("", "policy", fmt.Sprintf("read %s: %v", path, err))
	}
	policy, err := ParsePolicyYAML(data)
	if err != nil {
		return nil, err
	}
	return policy, nil
}

func expandCategories(version string, names []string) ([]ItemCategory, error) {
	if len(names) == 0 {
		return nil, NewConfigError(version, "vocabulary", "entry has no categories")
	}
	var out []ItemCategory
	for _, name := range names {
		if name == categoryAll {
			out = append(out, AllCategories...)
			continue
		}
		c := ItemCategory(name)
		if !c.Valid() {
			return nil, NewConfigError(version, "vocabulary", fmt.Sprintf("unknown category %q", name))
		}
		out = append(out, c)
	}
	return out, nil
}
