package tagpolicy

import "sort"

// candidate is an accepted proposal carrying its submission index, used for
// deterministic tie-breaking.
type candidate struct {
	TagProposal
	order       int
	autoApprove bool
}

// fieldOutcome is the full resolution record for one field of one item.
// The engine aggregates these into the result envelope; the status
// classifier reads them to route the item.
type fieldOutcome struct {
	field      Field
	kept       []candidate
	suppressed []SuppressedTag
	defaulted  *DefaultApplied
	// illegalSeen marks that the sensor returned at least one tag outside
	// the vocabulary for this field/category. The tag is already dropped;
	// the flag survives as a sensor-quality signal for review routing.
	illegalSeen bool
	// requiredUnfilled marks a required field that ended empty with no
	// fallback defined. This is the structural failure that escalates the
	// item to needs_fix.
	requiredUnfilled bool
}

// belowAuto reports whether the field kept tags but none cleared the
// auto-approve threshold.
func (o *fieldOutcome) belowAuto() bool {
	if len(o.kept) == 0 {
		return false
	}
	for _, c := range o.kept {
		if c.autoApprove {
			return false
		}
	}
	return true
}

// tags returns the surviving tag values in resolution order, including an
// applied default.
func (o *fieldOutcome) tags() []string {
	out := make([]string, 0, len(o.kept)+1)
	for _, c := range o.kept {
		out = append(out, c.Tag)
	}
	if o.defaulted != nil {
		out = append(out, o.defaulted.Value)
	}
	return out
}

// FieldResolver applies cardinality limits and defaulting on top of the
// per-proposal validator.
type FieldResolver struct {
	vocab      *Vocabulary
	thresholds Thresholds
	validator  *TagValidator
}

// NewFieldResolver builds a resolver over the given tables.
func NewFieldResolver(vocab *Vocabulary, thresholds Thresholds) *FieldResolver {
	return &FieldResolver{
		vocab:      vocab,
		thresholds: thresholds,
		validator:  NewTagValidator(vocab, thresholds),
	}
}

// Resolve validates every proposal for f, keeps the top proposals by
// confidence within the field's cardinality, and records every rejection.
// The sort is stable over submission order, so equal-confidence proposals
// survive first-submitted-first. Defaulting happens separately in
// ensureFilled, after conflict checking has had its say.
func (r *FieldResolver) Resolve(f Field, c ItemCategory, proposals Proposals) *fieldOutcome {
	out := &fieldOutcome{field: f}

	var accepted []candidate
	for i, p := range proposals {
		verdict := r.validator.Validate(f, c, p)
		if !verdict.Accepted {
			out.suppressed = append(out.suppressed, SuppressedTag{
				Field:      f,
				Tag:        p.Tag,
				Confidence: p.Confidence,
				Reason:     verdict.Reason,
			})
			if verdict.Reason == SuppressIllegalTag || verdict.Reason == SuppressInvalidForCategory {
				out.illegalSeen = true
			}
			continue
		}
		accepted = append(accepted, candidate{TagProposal: p, order: i, autoApprove: verdict.AutoApprove})
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Confidence > accepted[j].Confidence
	})

	limit := r.vocab.Cardinality(f).Max
	if len(accepted) > limit {
		for _, extra := range accepted[limit:] {
			out.suppressed = append(out.suppressed, SuppressedTag{
				Field:      f,
				Tag:        extra.Tag,
				Confidence: extra.Confidence,
				Reason:     SuppressExceedsCardinality,
			})
		}
		accepted = accepted[:limit]
	}
	out.kept = accepted
	return out
}

// ensureFilled applies the fallback default when a required field ended
// below its minimum cardinality, or marks it structurally unfilled when no
// fallback is defined. Idempotent; the engine calls it once per field after
// conflict resolution.
func (r *FieldResolver) ensureFilled(out *fieldOutcome, c ItemCategory) {
	if out.defaulted != nil || out.requiredUnfilled {
		return
	}
	if !r.vocab.IsRequired(out.field, c) {
		return
	}
	if len(out.kept) >= r.vocab.Cardinality(out.field).Min {
		return
	}
	if fallback, ok := r.thresholds.FallbackFor(out.field, c); ok {
		out.defaulted = &DefaultApplied{
			Field:  out.field,
			Value:  fallback,
			Reason: DefaultReasonRequiredMissing,
		}
		return
	}
	out.requiredUnfilled = true
}
