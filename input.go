package tagpolicy

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var shapeValidator = validator.New(validator.WithRequiredStructEnabled())

// Proposals is an ordered list of proposals for one field. The sensor wire
// format is either a single {tag, confidence} object for singular fields
// or an array for plural fields; both decode into a Proposals value. JSON
// array order is the submission order that tie-breaking depends on, so
// this type is the only place proposal lists enter the system.
type Proposals []TagProposal

// UnmarshalJSON accepts a single proposal object, an array of proposals,
// or null.
func (p *Proposals) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []TagProposal
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*p = list
		return nil
	}
	var one TagProposal
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*p = Proposals{one}
	return nil
}

// DecodeRawTagSet parses one sensor payload and checks the proposal shape:
// every proposal must carry a tag and a confidence within [0,1]. Shape
// violations are input defects, distinct from data-quality problems the
// policy handles field by field.
func DecodeRawTagSet(data []byte) (RawTagSet, error) {
	var raw RawTagSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawTagSet{}, NewInputError("", "payload is not a raw tag set", err)
	}
	if err := raw.CheckShape(); err != nil {
		return RawTagSet{}, err
	}
	return raw, nil
}

// CheckShape validates proposal shape across every field of the set.
func (r RawTagSet) CheckShape() error {
	if err := shapeValidator.Struct(r); err != nil {
		return NewInputError("", "proposal shape violates the input contract", err)
	}
	return nil
}
