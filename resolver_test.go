package tagpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultResolver() *FieldResolver {
	p := DefaultPolicy()
	return NewFieldResolver(p.Vocabulary, p.Thresholds)
}

func keptTags(out *fieldOutcome) []string {
	tags := make([]string, 0, len(out.kept))
	for _, c := range out.kept {
		tags = append(tags, c.Tag)
	}
	return tags
}

func Test_FieldResolver(t *testing.T) {
	t.Run("should keep the first submitted proposal on an exact confidence tie", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldSilhouette, CategoryBottom, Proposals{
			{Tag: "tapered", Confidence: 0.80},
			{Tag: "straight", Confidence: 0.80},
		})

		assert.Equal(t, []string{"tapered"}, keptTags(out))
		require.Len(t, out.suppressed, 1)
		assert.Equal(t, "straight", out.suppressed[0].Tag)
		assert.Equal(t, SuppressExceedsCardinality, out.suppressed[0].Reason)
	})

	t.Run("should preserve submission order among equal-confidence survivors", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldContext, CategoryTopBase, Proposals{
			{Tag: "weekend", Confidence: 0.75},
			{Tag: "everyday", Confidence: 0.75},
			{Tag: "travel", Confidence: 0.75},
		})

		assert.Equal(t, []string{"weekend", "everyday"}, keptTags(out))
		require.Len(t, out.suppressed, 1)
		assert.Equal(t, "travel", out.suppressed[0].Tag)
	})

	t.Run("should order survivors by descending confidence", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldPairingTags, CategoryBottom, Proposals{
			{Tag: "neutral-base", Confidence: 0.70},
			{Tag: "high-versatility", Confidence: 0.90},
			{Tag: "easy-dress-down", Confidence: 0.80},
		})

		assert.Equal(t, []string{"high-versatility", "easy-dress-down", "neutral-base"}, keptTags(out))
		assert.Empty(t, out.suppressed)
	})

	t.Run("should leave an optional field empty without defaulting", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldLength, CategoryBottom, Proposals{{Tag: "cropped", Confidence: 0.40}})
		r.ensureFilled(out, CategoryBottom)

		assert.Empty(t, out.kept)
		assert.Nil(t, out.defaulted)
		assert.False(t, out.requiredUnfilled)
		require.Len(t, out.suppressed, 1)
		assert.Equal(t, SuppressBelowThreshold, out.suppressed[0].Reason)
	})

	t.Run("should default a required field that received no proposals", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldFormality, CategoryTopMid, nil)
		r.ensureFilled(out, CategoryTopMid)

		require.NotNil(t, out.defaulted)
		assert.Equal(t, "casual", out.defaulted.Value)
		assert.Equal(t, DefaultReasonRequiredMissing, out.defaulted.Reason)
		assert.Equal(t, []string{"casual"}, out.tags())
	})

	t.Run("should pick the category-scoped silhouette fallback", func(t *testing.T) {
		r := newDefaultResolver()

		bottom := r.Resolve(FieldSilhouette, CategoryBottom, nil)
		r.ensureFilled(bottom, CategoryBottom)
		require.NotNil(t, bottom.defaulted)
		assert.Equal(t, "straight", bottom.defaulted.Value)

		top := r.Resolve(FieldSilhouette, CategoryTopBase, nil)
		r.ensureFilled(top, CategoryTopBase)
		require.NotNil(t, top.defaulted)
		assert.Equal(t, "neutral", top.defaulted.Value)
	})

	t.Run("should mark a required field with no fallback as unfilled", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldStyleIdentity, CategoryBottom, nil)
		r.ensureFilled(out, CategoryBottom)

		assert.True(t, out.requiredUnfilled)
		assert.Nil(t, out.defaulted)
	})

	t.Run("should not refill a field that was already defaulted", func(t *testing.T) {
		r := newDefaultResolver()
		out := r.Resolve(FieldFit, CategoryBottom, nil)
		r.ensureFilled(out, CategoryBottom)
		first := out.defaulted
		r.ensureFilled(out, CategoryBottom)

		assert.Same(t, first, out.defaulted)
	})
}
