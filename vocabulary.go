package tagpolicy

import "sort"

// TagSet is a set of legal tag values.
type TagSet map[string]struct{}

// NewTagSet builds a set from the given tags.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Values returns the tags in alphabetical order.
func (s TagSet) Values() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Cardinality bounds how many tags a field may carry in the canonical set.
type Cardinality struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FieldRule is the vocabulary entry for one field: cardinality, whether the
// field must end with a value, and the allowed tags per category. A
// category absent from Allowed means the field does not apply to it.
type FieldRule struct {
	Cardinality Cardinality
	Required    bool
	Allowed     map[ItemCategory]TagSet
}

// Vocabulary is the versioned controlled vocabulary: every legal tag per
// field per category. Lookups are pure and total; an empty set answers
// "not applicable". Vocabularies are built once and never mutated after
// the owning Policy is constructed.
type Vocabulary struct {
	rules map[Field]*FieldRule
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{rules: make(map[Field]*FieldRule)}
}

// Define sets the cardinality and required flag for a field. Allowed tags
// are attached with Allow.
func (v *Vocabulary) Define(f Field, min, max int, required bool) {
	rule := v.rule(f)
	rule.Cardinality = Cardinality{Min: min, Max: max}
	rule.Required = required
}

// Allow marks tags as legal for f under each of the given categories.
// Calling Allow repeatedly for the same field merges category scopes, which
// is how disjoint per-category sets (fit, silhouette) are expressed.
func (v *Vocabulary) Allow(f Field, categories []ItemCategory, tags ...string) {
	rule := v.rule(f)
	for _, c := range categories {
		set, ok := rule.Allowed[c]
		if !ok {
			set = make(TagSet, len(tags))
			rule.Allowed[c] = set
		}
		for _, t := range tags {
			set[t] = struct{}{}
		}
	}
}

func (v *Vocabulary) rule(f Field) *FieldRule {
	rule, ok := v.rules[f]
	if !ok {
		rule = &FieldRule{Allowed: make(map[ItemCategory]TagSet)}
		v.rules[f] = rule
	}
	return rule
}

// Allowed returns the legal tags for (field, category). The empty set means
// the field is not applicable to the category.
func (v *Vocabulary) Allowed(f Field, c ItemCategory) TagSet {
	rule, ok := v.rules[f]
	if !ok {
		return nil
	}
	return rule.Allowed[c]
}

// AllowedAny returns the union of legal tags for f across all categories.
// Used to distinguish a tag that is illegal everywhere from one that is
// merely wrong for this category.
func (v *Vocabulary) AllowedAny(f Field) TagSet {
	rule, ok := v.rules[f]
	if !ok {
		return nil
	}
	union := TagSet{}
	for _, set := range rule.Allowed {
		for t := range set {
			union[t] = struct{}{}
		}
	}
	return union
}

// Cardinality returns the (min, max) bounds for f.
func (v *Vocabulary) Cardinality(f Field) Cardinality {
	rule, ok := v.rules[f]
	if !ok {
		return Cardinality{}
	}
	return rule.Cardinality
}

// Applicable reports whether f carries any legal tags for c.
func (v *Vocabulary) Applicable(f Field, c ItemCategory) bool {
	return len(v.Allowed(f, c)) > 0
}

// IsRequired reports whether f must end with a value for items of
// category c. A field that does not apply to c is never required.
func (v *Vocabulary) IsRequired(f Field, c ItemCategory) bool {
	rule, ok := v.rules[f]
	if !ok {
		return false
	}
	return rule.Required && v.Applicable(f, c)
}

// Fields returns the defined fields in canonical processing order.
func (v *Vocabulary) Fields() []Field {
	out := make([]Field, 0, len(v.rules))
	for _, f := range fieldOrder {
		if _, ok := v.rules[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Category groupings used by the built-in vocabulary. Upper-body apparel
// and bottoms have disjoint fit and silhouette sets; footwear has its own
// field group.
var (
	apparelCategories = []ItemCategory{CategoryTopBase, CategoryTopMid, CategoryBottom, CategoryOuterwear}
	upperCategories   = []ItemCategory{CategoryTopBase, CategoryTopMid, CategoryOuterwear}
	bottomOnly        = []ItemCategory{CategoryBottom}
	footwearOnly      = []ItemCategory{CategoryFootwear}
)

// defaultVocabulary builds the v2.5 controlled vocabulary.
func defaultVocabulary() *Vocabulary {
	v := NewVocabulary()

	v.Define(FieldStyleIdentity, 1, 2, true)
	v.Allow(FieldStyleIdentity, AllCategories,
		"minimal", "classic", "preppy", "workwear", "streetwear", "rugged",
		"tailoring", "elevated-basics", "normcore", "sporty", "outdoorsy",
		"western", "vintage", "grunge", "punk", "utilitarian")

	// skinny is bottoms-only, oversized is upper-only.
	v.Define(FieldFit, 1, 1, true)
	v.Allow(FieldFit, bottomOnly, "skinny", "slim", "regular", "relaxed", "baggy")
	v.Allow(FieldFit, upperCategories, "slim", "regular", "relaxed", "oversized")

	v.Define(FieldSilhouette, 1, 1, true)
	v.Allow(FieldSilhouette, bottomOnly, "straight", "tapered", "wide")
	v.Allow(FieldSilhouette, upperCategories,
		"neutral", "relaxed", "boxy", "structured", "tailored", "longline")

	v.Define(FieldLength, 0, 1, false)
	v.Allow(FieldLength, apparelCategories, "cropped", "regular", "long")

	v.Define(FieldFormality, 1, 1, true)
	v.Allow(FieldFormality, AllCategories,
		"athletic", "casual", "smart-casual", "business-casual", "formal")

	v.Define(FieldContext, 0, 2, false)
	v.Allow(FieldContext, AllCategories,
		"everyday", "work-appropriate", "travel", "evening", "weekend")

	v.Define(FieldMaterials, 0, 2, false)
	v.Allow(FieldMaterials, apparelCategories,
		"denim", "cotton", "wool", "linen", "leather", "synthetic", "blend")
	v.Allow(FieldMaterials, footwearOnly,
		"leather", "suede", "canvas", "knit", "synthetic", "blend")

	v.Define(FieldConstructionDetails, 0, 2, false)
	v.Allow(FieldConstructionDetails, bottomOnly,
		"pleated", "flat-front", "cargo", "drawstring", "elastic-waist")
	v.Allow(FieldConstructionDetails, upperCategories,
		"structured-shoulder", "dropped-shoulder")

	v.Define(FieldColorFamily, 0, 1, false)
	v.Allow(FieldColorFamily, AllCategories,
		"black", "white", "grey", "navy", "brown", "beige", "olive",
		"blue", "green", "red", "multi")

	v.Define(FieldPattern, 0, 1, false)
	v.Allow(FieldPattern, AllCategories, "solid", "stripe", "check", "textured")

	v.Define(FieldPairingTags, 0, 3, false)
	v.Allow(FieldPairingTags, AllCategories,
		"neutral-base", "statement-piece", "easy-dress-up",
		"easy-dress-down", "high-versatility")

	v.Define(FieldShoeType, 1, 1, true)
	v.Allow(FieldShoeType, footwearOnly,
		"sneakers", "boots", "loafers", "derbies", "oxfords", "sandals",
		"dress-shoes")

	v.Define(FieldProfile, 1, 1, true)
	v.Allow(FieldProfile, footwearOnly, "sleek", "standard", "chunky")

	v.Define(FieldClosure, 0, 1, false)
	v.Allow(FieldClosure, footwearOnly, "lace-up", "slip-on", "buckle")

	return v
}
