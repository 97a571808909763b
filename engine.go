package tagpolicy

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Engine evaluates raw sensor output under one policy version. It is
// stateless per invocation and safe for concurrent use: the only shared
// data are the immutable policy tables.
type Engine struct {
	policy   *Policy
	resolver *FieldResolver
}

// NewEngine builds an engine for the given policy. The policy must have
// been validated; passing a broken or nil policy is a programmer error and
// is reported loudly rather than folded into needs_fix results.
func NewEngine(policy *Policy) (*Engine, error) {
	if policy == nil {
		return nil, NewConfigError("", "policy", "policy must not be nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		policy:   policy,
		resolver: NewFieldResolver(policy.Vocabulary, policy.Thresholds),
	}, nil
}

// PolicyVersion returns the version stamp this engine writes on results.
func (e *Engine) PolicyVersion() string { return e.policy.Version }

// Evaluate applies the policy to one item. It never mutates raw, performs
// no I/O, and returns identical output for identical input: proposals are
// processed in submission order, fields in canonical order, and all
// tie-breaks are explicit.
//
// A missing or unrecognized category fails fast with a needs_fix result,
// since category drives every category-scoped lookup.
func (e *Engine) Evaluate(raw RawTagSet, category ItemCategory) PolicyResult {
	if category == "" {
		return e.defectResult(category, ReasonMissingItemCategory)
	}
	if !category.Valid() {
		return e.defectResult(category, ReasonUnknownItemCategory)
	}

	vocab := e.policy.Vocabulary
	var outcomes []*fieldOutcome
	byField := make(map[Field]*fieldOutcome)
	for _, f := range vocab.Fields() {
		proposals := raw.proposals(f)
		// Fields that do not apply to this category are still resolved when
		// the sensor volunteered proposals for them, so the bogus proposals
		// end up in the audit trail.
		if !vocab.Applicable(f, category) && len(proposals) == 0 {
			continue
		}
		out := e.resolver.Resolve(f, category, proposals)
		outcomes = append(outcomes, out)
		byField[f] = out
	}

	conflictResolved := e.policy.Conflicts.apply(byField)

	// Defaulting runs after conflict resolution so a required field emptied
	// by a conflict still ends with a recorded default.
	for _, out := range outcomes {
		e.resolver.ensureFilled(out, category)
	}

	status, reasons := classify(outcomes, conflictResolved)

	result := PolicyResult{
		TagsFinal:       CanonicalTagSet{Category: category},
		CurationStatus:  status,
		CurationReasons: reasons,
		SuppressedTags:  []SuppressedTag{},
		DefaultsApplied: []DefaultApplied{},
		PolicyVersion:   e.policy.Version,
	}
	for _, out := range outcomes {
		result.TagsFinal.assign(out.field, out.tags())
		result.SuppressedTags = append(result.SuppressedTags, out.suppressed...)
		if out.defaulted != nil {
			result.DefaultsApplied = append(result.DefaultsApplied, *out.defaulted)
		}
	}
	return result
}

// EvaluateJSON decodes one sensor payload and evaluates it. A payload that
// violates the input contract yields a needs_fix result carrying
// malformed_raw_tags; the caller decides whether to retry after fixing the
// upstream input.
func (e *Engine) EvaluateJSON(data []byte, category ItemCategory) PolicyResult {
	raw, err := DecodeRawTagSet(data)
	if err != nil {
		return e.defectResult(category, ReasonMalformedRawTags)
	}
	return e.Evaluate(raw, category)
}

// evaluateChecked enforces the proposal shape contract before evaluating.
// Batch items arrive as already-decoded values, so the shape check that
// DecodeRawTagSet performs has to run here.
func (e *Engine) evaluateChecked(raw RawTagSet, category ItemCategory) PolicyResult {
	if err := raw.CheckShape(); err != nil {
		return e.defectResult(category, ReasonMalformedRawTags)
	}
	return e.Evaluate(raw, category)
}

func (e *Engine) defectResult(category ItemCategory, reason string) PolicyResult {
	return PolicyResult{
		TagsFinal:       CanonicalTagSet{Category: category},
		CurationStatus:  StatusNeedsFix,
		CurationReasons: []string{reason},
		SuppressedTags:  []SuppressedTag{},
		DefaultsApplied: []DefaultApplied{},
		PolicyVersion:   e.policy.Version,
	}
}

// Item pairs one item's raw sensor output with its externally assigned
// category for batch evaluation.
type Item struct {
	ID       string       `json:"id"`
	Category ItemCategory `json:"category"`
	RawTags  RawTagSet    `json:"tags_ai_raw"`
}

// ItemResult is one batch entry: the item ID plus its result envelope.
type ItemResult struct {
	ID string `json:"id"`
	PolicyResult
}

// EvaluateBatch evaluates items on up to workers goroutines. Results are
// positioned by input index, so the output never depends on which worker
// ran an item or in what order items were scheduled. Per-item data defects,
// including a raw set that violates the proposal shape contract, never
// abort the batch; the only error is context cancellation.
func (e *Engine) EvaluateBatch(ctx context.Context, items []Item, workers int) ([]ItemResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]ItemResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := items[i]
			results[i] = ItemResult{ID: item.ID, PolicyResult: e.evaluateChecked(item.RawTags, item.Category)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
