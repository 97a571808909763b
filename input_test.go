package tagpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DecodeRawTagSet(t *testing.T) {
	t.Run("should decode a singular field from a single object", func(t *testing.T) {
		raw, err := DecodeRawTagSet([]byte(`{"fit": {"tag": "slim", "confidence": 0.8}}`))
		require.NoError(t, err)
		require.Len(t, raw.Fit, 1)
		assert.Equal(t, TagProposal{Tag: "slim", Confidence: 0.8}, raw.Fit[0])
	})

	t.Run("should decode a plural field preserving submission order", func(t *testing.T) {
		raw, err := DecodeRawTagSet([]byte(`{
			"style_identity": [
				{"tag": "workwear", "confidence": 0.77},
				{"tag": "rugged", "confidence": 0.65}
			]
		}`))
		require.NoError(t, err)
		require.Len(t, raw.StyleIdentity, 2)
		assert.Equal(t, "workwear", raw.StyleIdentity[0].Tag)
		assert.Equal(t, "rugged", raw.StyleIdentity[1].Tag)
	})

	t.Run("should treat null fields as absent", func(t *testing.T) {
		raw, err := DecodeRawTagSet([]byte(`{"fit": null, "pattern": {"tag": "solid", "confidence": 0.9}}`))
		require.NoError(t, err)
		assert.Nil(t, raw.Fit)
		require.Len(t, raw.Pattern, 1)
	})

	t.Run("should reject confidence outside the unit interval", func(t *testing.T) {
		_, err := DecodeRawTagSet([]byte(`{"fit": {"tag": "slim", "confidence": 1.5}}`))
		require.Error(t, err)
		assert.IsType(t, &InputError{}, err)
	})

	t.Run("should reject a proposal without a tag", func(t *testing.T) {
		_, err := DecodeRawTagSet([]byte(`{"fit": {"confidence": 0.9}}`))
		require.Error(t, err)
		assert.IsType(t, &InputError{}, err)
	})

	t.Run("should reject unparseable payloads", func(t *testing.T) {
		_, err := DecodeRawTagSet([]byte(`{"fit": `))
		require.Error(t, err)
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.NotNil(t, inputErr.Unwrap())
	})
}

func Test_EvaluateJSON(t *testing.T) {
	engine := newDefaultEngine(t)

	t.Run("should evaluate a well-formed payload", func(t *testing.T) {
		result := engine.EvaluateJSON([]byte(`{
			"style_identity": [{"tag": "workwear", "confidence": 0.9}],
			"fit": {"tag": "regular", "confidence": 0.9},
			"silhouette": {"tag": "straight", "confidence": 0.9},
			"formality": {"tag": "casual", "confidence": 0.95}
		}`), CategoryBottom)

		assert.Equal(t, StatusApproved, result.CurationStatus)
		assert.Equal(t, "regular", result.TagsFinal.Fit)
	})

	t.Run("should fold a malformed payload into a needs_fix result", func(t *testing.T) {
		result := engine.EvaluateJSON([]byte(`{"fit": {"tag": "slim", "confidence": 2}}`), CategoryBottom)

		assert.Equal(t, StatusNeedsFix, result.CurationStatus)
		assert.Equal(t, []string{ReasonMalformedRawTags}, result.CurationReasons)
		assert.Equal(t, DefaultPolicyVersion, result.PolicyVersion)
	})
}
