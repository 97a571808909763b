package tagpolicy

// Verdict is the validator's judgment of a single proposal.
type Verdict struct {
	Accepted bool
	// Reason is set when the proposal was rejected.
	Reason SuppressReason
	// AutoApprove is set when an accepted proposal also clears the
	// auto-approve threshold. It does not affect acceptance, only review
	// routing.
	AutoApprove bool
}

// TagValidator checks one proposal at a time against the vocabulary and
// threshold tables. Validation is pure and order-independent across
// distinct proposals.
type TagValidator struct {
	vocab      *Vocabulary
	thresholds Thresholds
}

// NewTagValidator builds a validator over the given tables.
func NewTagValidator(vocab *Vocabulary, thresholds Thresholds) *TagValidator {
	return &TagValidator{vocab: vocab, thresholds: thresholds}
}

// Validate judges p proposed for field f on an item of category c.
// Legality is checked before confidence: a tag outside the vocabulary is
// rejected as illegal_tag, a tag legal elsewhere but not for c as
// invalid_for_category, and a legal tag under the acceptance floor as
// below_threshold.
func (v *TagValidator) Validate(f Field, c ItemCategory, p TagProposal) Verdict {
	if !v.vocab.Allowed(f, c).Has(p.Tag) {
		if v.vocab.AllowedAny(f).Has(p.Tag) {
			return Verdict{Reason: SuppressInvalidForCategory}
		}
		return Verdict{Reason: SuppressIllegalTag}
	}
	entry := v.thresholds.Entry(f)
	if p.Confidence < entry.AllowAt {
		return Verdict{Reason: SuppressBelowThreshold}
	}
	return Verdict{Accepted: true, AutoApprove: p.Confidence >= entry.AutoApproveAt}
}
