package tagpolicy

// ThresholdEntry holds the confidence cutoffs for one field.
//
// AllowAt is the acceptance floor: proposals below it are suppressed.
// AutoApproveAt marks the review boundary: accepted proposals below it keep
// the tag but flag the field for a human look. Fallback, when set, fills a
// required field that ended empty; FallbackByCategory overrides it for
// categories whose allowed set differs (silhouette).
type ThresholdEntry struct {
	AutoApproveAt      float64
	AllowAt            float64
	Fallback           string
	FallbackByCategory map[ItemCategory]string
}

// Thresholds maps each field to its cutoffs. Like the vocabulary it is
// immutable after the owning Policy is constructed.
type Thresholds map[Field]ThresholdEntry

// Entry returns the cutoffs for f, or a zero entry when none is defined.
func (t Thresholds) Entry(f Field) ThresholdEntry {
	return t[f]
}

// FallbackFor returns the fallback default for (field, category), if any.
func (t Thresholds) FallbackFor(f Field, c ItemCategory) (string, bool) {
	entry, ok := t[f]
	if !ok {
		return "", false
	}
	if v, ok := entry.FallbackByCategory[c]; ok {
		return v, true
	}
	if entry.Fallback != "" {
		return entry.Fallback, true
	}
	return "", false
}

// defaultThresholds builds the v2.5 threshold table. The numbers are
// deliberately conservative: better clean, sparse tags than noisy,
// uncertain ones. Required fields get fallbacks; optional fields are
// suppressed when uncertain.
func defaultThresholds() Thresholds {
	return Thresholds{
		FieldStyleIdentity: {AutoApproveAt: 0.85, AllowAt: 0.70},
		FieldFit:           {AutoApproveAt: 0.80, AllowAt: 0.65, Fallback: "regular"},
		FieldSilhouette: {
			AutoApproveAt: 0.80,
			AllowAt:       0.65,
			Fallback:      "neutral",
			FallbackByCategory: map[ItemCategory]string{
				CategoryBottom: "straight",
			},
		},
		FieldLength:              {AutoApproveAt: 0.70, AllowAt: 0.70},
		FieldFormality:           {AutoApproveAt: 0.80, AllowAt: 0.65, Fallback: "casual"},
		FieldContext:             {AutoApproveAt: 0.70, AllowAt: 0.70},
		FieldMaterials:           {AutoApproveAt: 0.70, AllowAt: 0.70},
		FieldConstructionDetails: {AutoApproveAt: 0.80, AllowAt: 0.70},
		FieldColorFamily:         {AutoApproveAt: 0.70, AllowAt: 0.70},
		FieldPattern:             {AutoApproveAt: 0.70, AllowAt: 0.70},
		FieldPairingTags:         {AutoApproveAt: 0.65, AllowAt: 0.65},
		FieldShoeType:            {AutoApproveAt: 0.80, AllowAt: 0.65, Fallback: "dress-shoes"},
		FieldProfile:             {AutoApproveAt: 0.80, AllowAt: 0.70, Fallback: "standard"},
		FieldClosure:             {AutoApproveAt: 0.70, AllowAt: 0.70},
	}
}
