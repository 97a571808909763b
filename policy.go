package tagpolicy

import (
	"fmt"
	"sort"
)

// DefaultPolicyVersion is the version stamp of the built-in policy.
const DefaultPolicyVersion = "tag_policy_v2.5"

// Policy is one immutable, versioned bundle of decision tables. Engines
// hold a Policy by reference and never mutate it, so any number of policy
// versions may coexist in a process for re-evaluating historical items.
type Policy struct {
	Version    string
	Vocabulary *Vocabulary
	Thresholds Thresholds
	Conflicts  ConflictTable
}

// DefaultPolicy returns the built-in v2.5 policy.
func DefaultPolicy() *Policy {
	return &Policy{
		Version:    DefaultPolicyVersion,
		Vocabulary: defaultVocabulary(),
		Thresholds: defaultThresholds(),
		Conflicts:  defaultConflicts(),
	}
}

// Validate checks the policy tables for internal consistency: every field
// is known and has sane cardinality, every vocabulary field has a
// threshold entry with allow <= auto, every fallback is itself a legal tag
// for each category it can be applied to, and every conflict rule points at
// tags the vocabulary could actually produce.
func (p *Policy) Validate() error {
	if p.Version == "" {
		return NewConfigError("", "policy", "version must not be empty")
	}
	if p.Vocabulary == nil || len(p.Vocabulary.rules) == 0 {
		return NewConfigError(p.Version, "vocabulary", "no fields defined")
	}

	for _, f := range p.Vocabulary.Fields() {
		rule := p.Vocabulary.rules[f]
		card := rule.Cardinality
		if card.Max < 1 {
			return NewConfigError(p.Version, "vocabulary", fmt.Sprintf("field %s: max cardinality must be >= 1", f))
		}
		if card.Min < 0 || card.Min > card.Max {
			return NewConfigError(p.Version, "vocabulary", fmt.Sprintf("field %s: invalid cardinality [%d,%d]", f, card.Min, card.Max))
		}
		if rule.Required && card.Min < 1 {
			return NewConfigError(p.Version, "vocabulary", fmt.Sprintf("field %s: required fields need min cardinality >= 1", f))
		}

		entry, ok := p.Thresholds[f]
		if !ok {
			return NewConfigError(p.Version, "thresholds", fmt.Sprintf("field %s: no threshold entry", f))
		}
		if entry.AllowAt < 0 || entry.AutoApproveAt > 1 {
			return NewConfigError(p.Version, "thresholds", fmt.Sprintf("field %s: cutoffs must stay within [0,1]", f))
		}
		if entry.AllowAt > entry.AutoApproveAt {
			return NewConfigError(p.Version, "thresholds", fmt.Sprintf("field %s: allow_at %.2f exceeds auto_approve_at %.2f", f, entry.AllowAt, entry.AutoApproveAt))
		}
		for _, c := range AllCategories {
			if !p.Vocabulary.Applicable(f, c) {
				continue
			}
			fallback, ok := p.Thresholds.FallbackFor(f, c)
			if ok && !p.Vocabulary.Allowed(f, c).Has(fallback) {
				return NewConfigError(p.Version, "thresholds", fmt.Sprintf("field %s: fallback %q is not a legal tag for category %s", f, fallback, c))
			}
		}
	}

	var extra []string
	for f := range p.Thresholds {
		if _, ok := p.Vocabulary.rules[f]; !ok {
			extra = append(extra, string(f))
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return NewConfigError(p.Version, "thresholds", fmt.Sprintf("entries for undefined fields: %v", extra))
	}

	for i, pair := range p.Conflicts {
		for _, ref := range []TagRef{pair.A, pair.B} {
			if !knownField(ref.Field) {
				return NewConfigError(p.Version, "conflicts", fmt.Sprintf("pair %d: unknown field %q", i, ref.Field))
			}
			if !p.Vocabulary.AllowedAny(ref.Field).Has(ref.Tag) {
				return NewConfigError(p.Version, "conflicts", fmt.Sprintf("pair %d: tag %q is not in the vocabulary for field %s", i, ref.Tag, ref.Field))
			}
		}
		if pair.A == pair.B {
			return NewConfigError(p.Version, "conflicts", fmt.Sprintf("pair %d: a tag cannot conflict with itself", i))
		}
	}

	return nil
}
