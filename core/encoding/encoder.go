// Package encoding maps categorical string values to dense integer codes
// and back. Encoders are fitted once per categorical column from the values
// observed in the training set and live as long as the artifact that owns
// them. Encoding a value outside the fitted vocabulary fails with an
// UNKNOWN_CATEGORY error rather than silently mapping to a garbage code.
package encoding

import (
	"sort"

	"carbontrace/internal/errors"
)

// Encoder is a fitted bidirectional mapping between category strings and
// integer codes. Codes are assigned by sorted order over the distinct
// training values, so two training runs over the same data always produce
// the same codes regardless of record order.
type Encoder struct {
	// Field names the categorical column, used in error reporting
	Field string

	// Classes holds the vocabulary in sorted order; the code of a class is
	// its index
	Classes []string
}

// Fit builds an encoder from the values observed in a training column
func Fit(field string, values []string) *Encoder {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)
	return &Encoder{Field: field, Classes: classes}
}

// Encode returns the integer code for a category string. A value absent
// from the fitted vocabulary is an UNKNOWN_CATEGORY failure naming the
// field and the offending value.
func (e *Encoder) Encode(value string) (int, error) {
	i := sort.SearchStrings(e.Classes, value)
	if i >= len(e.Classes) || e.Classes[i] != value {
		return 0, errors.UnknownCategory(e.Field, value)
	}
	return i, nil
}

// Decode returns the category string for a code
func (e *Encoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", errors.Newf(errors.TypeInternal, "%s code %d out of range [0,%d)", e.Field, code, len(e.Classes))
	}
	return e.Classes[code], nil
}

// Vocabulary returns a copy of the known classes in code order
func (e *Encoder) Vocabulary() []string {
	out := make([]string, len(e.Classes))
	copy(out, e.Classes)
	return out
}

// Len returns the vocabulary size
func (e *Encoder) Len() int {
	return len(e.Classes)
}
