package thinking

import (
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field identifies one of the six labelled fields of a reasoning block, in
// canonical order.
type Field int

const (
	FieldSituation Field = iota
	FieldProcedure
	FieldStep
	FieldKnownInfo
	FieldMissingInfo
	FieldAction
)

var fieldNames = []string{
	"Situation",
	"Procedure",
	"Step",
	"KnownInfo",
	"MissingInfo",
	"Action",
}

// Labels are the Vietnamese field labels as emitted by the synthesis pipeline.
var fieldLabels = []string{
	"Tình huống",
	"Quy trình",
	"Bước",
	"Thông tin có",
	"Thông tin cần thêm",
	"Hành động",
}

func (f Field) String() string {
	if int(f) < 0 || int(f) >= len(fieldNames) {
		return "Unknown"
	}
	return fieldNames[f]
}

func (f Field) Label() string {
	if int(f) < 0 || int(f) >= len(fieldLabels) {
		return ""
	}
	return fieldLabels[f]
}

// Fields returns the six fields in canonical order.
func Fields() []Field {
	return []Field{FieldSituation, FieldProcedure, FieldStep, FieldKnownInfo, FieldMissingInfo, FieldAction}
}

// anchorPatterns locate the label anchors. The KnownInfo label tolerates a
// qualifier between the label root and the colon ("Thông tin có (từ hội
// thoại):"), which shows up in older synthetic data.
var anchorPatterns = func() []*regexp.Regexp {
	ret := make([]*regexp.Regexp, len(fieldLabels))
	for i, label := range fieldLabels {
		pattern := regexp.QuoteMeta(label) + ":"
		if Field(i) == FieldKnownInfo {
			pattern = regexp.QuoteMeta(label) + `[^:\n]*:`
		}
		ret[i] = regexp.MustCompile(pattern)
	}
	return ret
}()

// FieldValue is the extracted content of a single field. A field is present
// iff its label anchor was found, independent of whether the trailing text is
// empty.
type FieldValue struct {
	Present bool
	Text    string
}

// Record is the ordered field-name to extracted-text mapping of one reasoning
// block.
type Record struct {
	values *orderedmap.OrderedMap[Field, FieldValue]

	// OrderViolation is set when the anchors are present but their textual
	// positions do not follow canonical field order. Diagnostics only; it
	// does not feed the reward scalar.
	OrderViolation bool
}

// Extract locates each label anchor independently and extracts the text from
// after the colon up to the next recognized anchor or end of string.
func Extract(text string) *Record {
	type anchor struct {
		field        Field
		start        int
		contentStart int
	}

	anchors := []anchor{}
	for i, pattern := range anchorPatterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		anchors = append(anchors, anchor{
			field:        Field(i),
			start:        loc[0],
			contentStart: loc[1],
		})
	}

	ret := &Record{
		values: orderedmap.New[Field, FieldValue](),
	}
	for _, f := range Fields() {
		ret.values.Set(f, FieldValue{})
	}

	// anchors were collected in canonical field order; a position inversion
	// means the block lists its fields out of order
	lastStart := -1
	for _, a := range anchors {
		if a.start < lastStart {
			ret.OrderViolation = true
		}
		lastStart = a.start
	}

	for _, a := range anchors {
		end := len(text)
		for _, other := range anchors {
			if other.start > a.start && other.start < end {
				end = other.start
			}
		}
		ret.values.Set(a.field, FieldValue{
			Present: true,
			Text:    strings.TrimSpace(text[a.contentStart:end]),
		})
	}

	return ret
}

// Value returns the extracted value for a field. Unknown fields read as absent.
func (r *Record) Value(f Field) FieldValue {
	v, ok := r.values.Get(f)
	if !ok {
		return FieldValue{}
	}
	return v
}

// PresentCount returns the number of fields whose anchor was found.
func (r *Record) PresentCount() int {
	count := 0
	for pair := r.values.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Present {
			count++
		}
	}
	return count
}
