package tagpolicy

// TagRef names one (field, tag) pair in the conflict table.
type TagRef struct {
	Field Field  `yaml:"field" json:"field"`
	Tag   string `yaml:"tag" json:"tag"`
}

// ConflictPair declares two tags that must not coexist in one canonical
// set. Pairs may span fields or sit within a single plural field.
type ConflictPair struct {
	A TagRef `yaml:"a" json:"a"`
	B TagRef `yaml:"b" json:"b"`
}

// ConflictTable is the versioned list of disallowed combinations. It is
// checked after field resolution; an empty table is a legal configuration.
type ConflictTable []ConflictPair

// defaultConflicts is the v2.5 table. The pairs follow the style-identity
// guardrails: minimal excludes deliberate visual noise, normcore excludes
// identity signaling.
func defaultConflicts() ConflictTable {
	return ConflictTable{
		{A: TagRef{FieldStyleIdentity, "minimal"}, B: TagRef{FieldStyleIdentity, "grunge"}},
		{A: TagRef{FieldStyleIdentity, "minimal"}, B: TagRef{FieldStyleIdentity, "punk"}},
		{A: TagRef{FieldStyleIdentity, "normcore"}, B: TagRef{FieldStyleIdentity, "streetwear"}},
	}
}

// apply walks the table in order and, for each pair whose members both
// survived resolution, drops the lower-confidence member. On equal
// confidence the A side of the rule survives. Returns whether any conflict
// was resolved.
func (t ConflictTable) apply(byField map[Field]*fieldOutcome) bool {
	resolved := false
	for _, pair := range t {
		a, b := byField[pair.A.Field], byField[pair.B.Field]
		if a == nil || b == nil {
			continue
		}
		ai, bi := keptIndex(a, pair.A.Tag), keptIndex(b, pair.B.Tag)
		if ai < 0 || bi < 0 {
			continue
		}
		if a == b && ai == bi {
			continue
		}
		if a.kept[ai].Confidence < b.kept[bi].Confidence {
			dropKept(a, ai)
		} else {
			dropKept(b, bi)
		}
		resolved = true
	}
	return resolved
}

func keptIndex(out *fieldOutcome, tag string) int {
	for i, c := range out.kept {
		if c.Tag == tag {
			return i
		}
	}
	return -1
}

func dropKept(out *fieldOutcome, i int) {
	c := out.kept[i]
	out.kept = append(out.kept[:i:i], out.kept[i+1:]...)
	out.suppressed = append(out.suppressed, SuppressedTag{
		Field:      out.field,
		Tag:        c.Tag,
		Confidence: c.Confidence,
		Reason:     SuppressConflict,
	})
}
