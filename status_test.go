package tagpolicy

import (
	"reflect"
	"testing"
)

func Test_Classify_FixShortCircuitsReview(t *testing.T) {
	outcomes := []*fieldOutcome{
		{field: FieldStyleIdentity, requiredUnfilled: true},
		{field: FieldFit, defaulted: &DefaultApplied{Field: FieldFit, Value: "regular", Reason: DefaultReasonRequiredMissing}},
	}

	status, reasons := classify(outcomes, false)
	if status != StatusNeedsFix {
		t.Fatalf("expected needs_fix, got %s", status)
	}
	// Fix reasons come first, review reasons are still recorded after.
	want := []string{"missing_style_identity", "fit_defaulted"}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("expected reasons %v, got %v", want, reasons)
	}
}

func Test_Classify_ReviewTriggersAreNonExclusive(t *testing.T) {
	outcomes := []*fieldOutcome{
		{field: FieldStyleIdentity, kept: []candidate{{TagProposal: TagProposal{Tag: "workwear", Confidence: 0.75}}}},
		{field: FieldFit, illegalSeen: true, defaulted: &DefaultApplied{Field: FieldFit, Value: "regular", Reason: DefaultReasonRequiredMissing}},
	}

	status, reasons := classify(outcomes, true)
	if status != StatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", status)
	}
	want := []string{
		"style_identity_low_confidence",
		"fit_defaulted",
		ReasonIllegalTagReturned,
		ReasonConflictResolved,
	}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("expected reasons %v, got %v", want, reasons)
	}
}

func Test_Classify_ApprovedHasEmptyReasons(t *testing.T) {
	outcomes := []*fieldOutcome{
		{field: FieldFit, kept: []candidate{{TagProposal: TagProposal{Tag: "regular", Confidence: 0.91}, autoApprove: true}}},
	}

	status, reasons := classify(outcomes, false)
	if status != StatusApproved {
		t.Fatalf("expected approved, got %s", status)
	}
	if len(reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", reasons)
	}
	if reasons == nil {
		t.Fatal("reasons must be an empty list, not nil")
	}
}

func Test_Classify_DeduplicatesSharedReasons(t *testing.T) {
	outcomes := []*fieldOutcome{
		{field: FieldContext, illegalSeen: true},
		{field: FieldPattern, illegalSeen: true},
	}

	_, reasons := classify(outcomes, false)
	want := []string{ReasonIllegalTagReturned}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("expected reasons %v, got %v", want, reasons)
	}
}
