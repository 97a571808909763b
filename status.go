package tagpolicy

// orderedSet is an insertion-ordered, deduplicated reason list.
type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, values: []string{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

// classify folds the per-field outcomes into one curation status plus the
// ordered reason list.
//
// needs_fix checks run first and decide the status outright: any required
// field that ended empty with no fallback is a failure the policy cannot
// paper over. The needs_review triggers are then evaluated as a
// non-exclusive OR — every matching reason is recorded, not just the
// first — so the audit trail is complete even for needs_fix items.
func classify(outcomes []*fieldOutcome, conflictResolved bool) (CurationStatus, []string) {
	reasons := newOrderedSet()

	fix := false
	for _, out := range outcomes {
		if out.requiredUnfilled {
			reasons.add(missingReason(out.field))
			fix = true
		}
	}

	review := false
	for _, out := range outcomes {
		if out.defaulted != nil {
			reasons.add(defaultedReason(out.field))
			review = true
		}
		if out.belowAuto() {
			reasons.add(lowConfidenceReason(out.field))
			review = true
		}
		if out.illegalSeen {
			reasons.add(ReasonIllegalTagReturned)
			review = true
		}
	}
	if conflictResolved {
		reasons.add(ReasonConflictResolved)
		review = true
	}

	switch {
	case fix:
		return StatusNeedsFix, reasons.values
	case review:
		return StatusNeedsReview, reasons.values
	default:
		return StatusApproved, reasons.values
	}
}
