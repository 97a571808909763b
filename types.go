// Package tagpolicy is the decision layer between the AI vision sensor and
// the outfit generator. The sensor proposes tags with confidence scores;
// this package decides which proposals to accept, suppress, or default, and
// routes the item to a curation status. It never invents tags, performs no
// I/O, and is a pure function of (raw proposals, item category, policy
// version).
package tagpolicy

// ItemCategory is the product category assigned at ingestion. The policy
// layer never infers or overrides it.
type ItemCategory string

const (
	CategoryTopBase   ItemCategory = "top_base"
	CategoryTopMid    ItemCategory = "top_mid"
	CategoryBottom    ItemCategory = "bottom"
	CategoryOuterwear ItemCategory = "outerwear"
	CategoryFootwear  ItemCategory = "footwear"
)

// AllCategories lists every recognized category in canonical order.
var AllCategories = []ItemCategory{
	CategoryTopBase,
	CategoryTopMid,
	CategoryBottom,
	CategoryOuterwear,
	CategoryFootwear,
}

// Valid reports whether c is one of the recognized categories.
func (c ItemCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Field identifies one tag dimension of the controlled vocabulary.
type Field string

const (
	FieldStyleIdentity       Field = "style_identity"
	FieldFit                 Field = "fit"
	FieldSilhouette          Field = "silhouette"
	FieldLength              Field = "length"
	FieldFormality           Field = "formality"
	FieldContext             Field = "context"
	FieldMaterials           Field = "materials"
	FieldConstructionDetails Field = "construction_details"
	FieldColorFamily         Field = "color_family"
	FieldPattern             Field = "pattern"
	FieldPairingTags         Field = "pairing_tags"
	FieldShoeType            Field = "shoe_type"
	FieldProfile             Field = "profile"
	FieldClosure             Field = "closure"
)

// fieldOrder fixes the processing order for every evaluation. Reason codes
// and suppression records follow this order, which makes results
// reproducible across runs.
var fieldOrder = []Field{
	FieldStyleIdentity,
	FieldFit,
	FieldSilhouette,
	FieldLength,
	FieldFormality,
	FieldContext,
	FieldMaterials,
	FieldConstructionDetails,
	FieldColorFamily,
	FieldPattern,
	FieldPairingTags,
	FieldShoeType,
	FieldProfile,
	FieldClosure,
}

// knownField reports whether name is a recognized field identifier.
func knownField(name Field) bool {
	for _, f := range fieldOrder {
		if f == name {
			return true
		}
	}
	return false
}

// TagProposal is one sensor proposal: a tag from the controlled vocabulary
// plus the model's confidence. Immutable once received.
type TagProposal struct {
	Tag        string  `json:"tag" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// RawTagSet is the sensor output for one item: per field, an ordered list
// of proposals. Fields whose wire form is a single object decode to a
// one-element list (see Proposals). The set is stored verbatim for audit
// and is never mutated by a policy run.
type RawTagSet struct {
	StyleIdentity       Proposals `json:"style_identity,omitempty" validate:"omitempty,dive"`
	Fit                 Proposals `json:"fit,omitempty" validate:"omitempty,dive"`
	Silhouette          Proposals `json:"silhouette,omitempty" validate:"omitempty,dive"`
	Length              Proposals `json:"length,omitempty" validate:"omitempty,dive"`
	Formality           Proposals `json:"formality,omitempty" validate:"omitempty,dive"`
	Context             Proposals `json:"context,omitempty" validate:"omitempty,dive"`
	Materials           Proposals `json:"materials,omitempty" validate:"omitempty,dive"`
	ConstructionDetails Proposals `json:"construction_details,omitempty" validate:"omitempty,dive"`
	ColorFamily         Proposals `json:"color_family,omitempty" validate:"omitempty,dive"`
	Pattern             Proposals `json:"pattern,omitempty" validate:"omitempty,dive"`
	PairingTags         Proposals `json:"pairing_tags,omitempty" validate:"omitempty,dive"`
	ShoeType            Proposals `json:"shoe_type,omitempty" validate:"omitempty,dive"`
	Profile             Proposals `json:"profile,omitempty" validate:"omitempty,dive"`
	Closure             Proposals `json:"closure,omitempty" validate:"omitempty,dive"`
}

// proposals returns the proposal list for f in submission order.
func (r RawTagSet) proposals(f Field) Proposals {
	switch f {
	case FieldStyleIdentity:
		return r.StyleIdentity
	case FieldFit:
		return r.Fit
	case FieldSilhouette:
		return r.Silhouette
	case FieldLength:
		return r.Length
	case FieldFormality:
		return r.Formality
	case FieldContext:
		return r.Context
	case FieldMaterials:
		return r.Materials
	case FieldConstructionDetails:
		return r.ConstructionDetails
	case FieldColorFamily:
		return r.ColorFamily
	case FieldPattern:
		return r.Pattern
	case FieldPairingTags:
		return r.PairingTags
	case FieldShoeType:
		return r.ShoeType
	case FieldProfile:
		return r.Profile
	case FieldClosure:
		return r.Closure
	}
	return nil
}

// CanonicalTagSet holds the policy-approved, confidence-free tags. It is
// the only structure the downstream generator may read. Singular fields
// hold at most one value; plural fields preserve resolution order.
type CanonicalTagSet struct {
	Category            ItemCategory `json:"category"`
	StyleIdentity       []string     `json:"style_identity,omitempty"`
	Fit                 string       `json:"fit,omitempty"`
	Silhouette          string       `json:"silhouette,omitempty"`
	Length              string       `json:"length,omitempty"`
	Formality           string       `json:"formality,omitempty"`
	Context             []string     `json:"context,omitempty"`
	Materials           []string     `json:"materials,omitempty"`
	ConstructionDetails []string     `json:"construction_details,omitempty"`
	ColorFamily         string       `json:"color_family,omitempty"`
	Pattern             string       `json:"pattern,omitempty"`
	PairingTags         []string     `json:"pairing_tags,omitempty"`
	ShoeType            string       `json:"shoe_type,omitempty"`
	Profile             string       `json:"profile,omitempty"`
	Closure             string       `json:"closure,omitempty"`
}

// assign writes the resolved tags for f. Singular fields take the first
// value; callers guarantee cardinality was already enforced.
func (c *CanonicalTagSet) assign(f Field, tags []string) {
	if len(tags) == 0 {
		return
	}
	switch f {
	case FieldStyleIdentity:
		c.StyleIdentity = tags
	case FieldFit:
		c.Fit = tags[0]
	case FieldSilhouette:
		c.Silhouette = tags[0]
	case FieldLength:
		c.Length = tags[0]
	case FieldFormality:
		c.Formality = tags[0]
	case FieldContext:
		c.Context = tags
	case FieldMaterials:
		c.Materials = tags
	case FieldConstructionDetails:
		c.ConstructionDetails = tags
	case FieldColorFamily:
		c.ColorFamily = tags[0]
	case FieldPattern:
		c.Pattern = tags[0]
	case FieldPairingTags:
		c.PairingTags = tags
	case FieldShoeType:
		c.ShoeType = tags[0]
	case FieldProfile:
		c.Profile = tags[0]
	case FieldClosure:
		c.Closure = tags[0]
	}
}

// Get returns the resolved tags for f, singular fields as a one-element
// slice. Useful for property-style assertions over every field.
func (c CanonicalTagSet) Get(f Field) []string {
	single := func(s string) []string {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	switch f {
	case FieldStyleIdentity:
		return c.StyleIdentity
	case FieldFit:
		return single(c.Fit)
	case FieldSilhouette:
		return single(c.Silhouette)
	case FieldLength:
		return single(c.Length)
	case FieldFormality:
		return single(c.Formality)
	case FieldContext:
		return c.Context
	case FieldMaterials:
		return c.Materials
	case FieldConstructionDetails:
		return c.ConstructionDetails
	case FieldColorFamily:
		return single(c.ColorFamily)
	case FieldPattern:
		return single(c.Pattern)
	case FieldPairingTags:
		return c.PairingTags
	case FieldShoeType:
		return single(c.ShoeType)
	case FieldProfile:
		return single(c.Profile)
	case FieldClosure:
		return single(c.Closure)
	}
	return nil
}

// SuppressReason says why a proposal was dropped.
type SuppressReason string

const (
	SuppressIllegalTag         SuppressReason = "illegal_tag"
	SuppressInvalidForCategory SuppressReason = "invalid_for_category"
	SuppressBelowThreshold     SuppressReason = "below_threshold"
	SuppressExceedsCardinality SuppressReason = "exceeds_cardinality"
	SuppressConflict           SuppressReason = "conflict"
)

// SuppressedTag records one dropped proposal for the audit trail.
type SuppressedTag struct {
	Field      Field          `json:"field"`
	Tag        string         `json:"tag"`
	Confidence float64        `json:"confidence"`
	Reason     SuppressReason `json:"reason"`
}

// DefaultReasonRequiredMissing is recorded when a required field ended
// empty and the threshold table supplied its fallback.
const DefaultReasonRequiredMissing = "required_missing_or_suppressed"

// DefaultApplied records one fallback value written into the canonical set.
type DefaultApplied struct {
	Field  Field  `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// CurationStatus routes an item after evaluation: fully automated,
// flagged for a human look, or structurally broken.
type CurationStatus string

const (
	StatusApproved    CurationStatus = "approved"
	StatusNeedsReview CurationStatus = "needs_review"
	StatusNeedsFix    CurationStatus = "needs_fix"
)

// Curation reason codes that are not derived from a field name.
const (
	ReasonMissingItemCategory = "missing_item_category"
	ReasonUnknownItemCategory = "unknown_item_category"
	ReasonMalformedRawTags    = "malformed_raw_tags"
	ReasonIllegalTagReturned  = "illegal_tag_returned"
	ReasonConflictResolved    = "conflict_resolved"
)

func missingReason(f Field) string       { return "missing_" + string(f) }
func defaultedReason(f Field) string     { return string(f) + "_defaulted" }
func lowConfidenceReason(f Field) string { return string(f) + "_low_confidence" }

// PolicyResult is the evaluation envelope. Everything the policy decided is
// captured here as data; the evaluate boundary never reports data-quality
// problems as errors.
type PolicyResult struct {
	TagsFinal       CanonicalTagSet  `json:"tags_final"`
	CurationStatus  CurationStatus   `json:"curation_status"`
	CurationReasons []string         `json:"curation_reasons"`
	SuppressedTags  []SuppressedTag  `json:"suppressed_tags"`
	DefaultsApplied []DefaultApplied `json:"defaults_applied"`
	PolicyVersion   string           `json:"tag_policy_version"`
}
