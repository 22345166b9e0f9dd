package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/deppfellow/flashcards/internal/model"
	"github.com/go-viper/mapstructure/v2"
)

// Payload is a decoded JSON object as received from the client.
type Payload map[string]any

// Operation selects the rule set a payload is checked against.
type Operation string

const (
	WordCreate  Operation = "word-create"
	WordReplace Operation = "word-replace"
	WordPatch   Operation = "word-patch"
	ScoreCreate Operation = "score-create"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInteger
)

type fieldRule struct {
	kind     fieldKind
	nullable bool
}

// schema is a closed object schema: keys outside fields are rejected.
type schema struct {
	fields   map[string]fieldRule
	required []string
	// anyOf lists fields of which at least one must be present.
	anyOf []string
	// target returns a pointer to the typed input the payload decodes into.
	target func() any
}

var wordFields = map[string]fieldRule{
	"english_word":  {kind: kindString},
	"finnish_word":  {kind: kindString},
	"category_tags": {kind: kindString},
}

// storedWordFields additionally accepts the id of the row being edited, which
// clients echo back from a previous read. It is never written.
var storedWordFields = map[string]fieldRule{
	"id":            {kind: kindInteger},
	"english_word":  {kind: kindString},
	"finnish_word":  {kind: kindString},
	"category_tags": {kind: kindString},
}

var schemas = map[Operation]schema{
	WordCreate: {
		fields:   wordFields,
		required: []string{"english_word", "finnish_word", "category_tags"},
		target:   func() any { return &model.CreateWordInput{} },
	},
	WordReplace: {
		fields:   storedWordFields,
		required: []string{"english_word", "finnish_word", "category_tags"},
		target:   func() any { return &model.ReplaceWordInput{} },
	},
	WordPatch: {
		fields: storedWordFields,
		anyOf:  []string{"english_word", "finnish_word", "category_tags"},
		target: func() any { return &model.PatchWordInput{} },
	},
	ScoreCreate: {
		fields: map[string]fieldRule{
			"score":           {kind: kindString},
			"correct_words":   {kind: kindString},
			"incorrect_words": {kind: kindString},
			"date":            {kind: kindString, nullable: true},
		},
		required: []string{"score", "correct_words", "incorrect_words"},
		target:   func() any { return &model.CreateScoreInput{} },
	},
}

// Validate checks payload against the rules of op and returns every
// violation found, sorted by field. A nil result means the payload is valid.
func Validate(op Operation, payload Payload) []errs.FieldError {
	_, fieldErrors := check(op, payload)
	return fieldErrors
}

// Decode validates payload against op and returns the typed input.
//
// A rule violation yields a ValidationFailed *errs.HTTPError carrying the
// field errors. T must be the input type registered for op.
func Decode[T any](op Operation, payload Payload) (T, error) {
	var zero T

	target, fieldErrors := check(op, payload)
	if fieldErrors != nil {
		return zero, errs.NewValidationFailedError(fieldErrors)
	}

	typed, ok := target.(*T)
	if !ok {
		return zero, fmt.Errorf("operation %s does not decode into %T", op, zero)
	}
	return *typed, nil
}

func check(op Operation, payload Payload) (any, []errs.FieldError) {
	s, ok := schemas[op]
	if !ok {
		return nil, []errs.FieldError{{Field: "payload", Error: fmt.Sprintf("unknown operation %q", op)}}
	}

	var fieldErrors []errs.FieldError

	for key, value := range payload {
		rule, known := s.fields[key]
		if !known {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: key, Error: "is not allowed"})
			continue
		}
		if msg := checkKind(rule, value); msg != "" {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: key, Error: msg})
		}
	}

	for _, key := range s.required {
		if _, present := payload[key]; !present {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: key, Error: "is required"})
		}
	}

	if len(s.anyOf) > 0 && !containsAny(payload, s.anyOf) {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: "payload",
			Error: "must contain at least one of: " + strings.Join(s.anyOf, ", "),
		})
	}

	// Value constraints only make sense once the shape is right.
	if len(fieldErrors) > 0 {
		return nil, sortFieldErrors(fieldErrors)
	}

	target := s.target()
	if err := decodeInto(payload, target); err != nil {
		return nil, []errs.FieldError{{Field: "payload", Error: err.Error()}}
	}

	if err := validate.Struct(target); err != nil {
		_, fieldErrors = extractValidationError(err)
		return nil, sortFieldErrors(fieldErrors)
	}

	return target, nil
}

func checkKind(rule fieldRule, value any) string {
	if value == nil {
		if rule.nullable {
			return ""
		}
		return mustBe(rule.kind)
	}

	switch rule.kind {
	case kindString:
		if _, ok := value.(string); !ok {
			return mustBe(rule.kind)
		}
	case kindInteger:
		if !isInteger(value) {
			return mustBe(rule.kind)
		}
	}
	return ""
}

func mustBe(kind fieldKind) string {
	if kind == kindInteger {
		return "must be an integer"
	}
	return "must be a string"
}

// isInteger accepts the representations encoding/json and callers produce
// for whole numbers.
func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == math.Trunc(v) && !math.IsInf(v, 0)
	case json.Number:
		_, err := v.Int64()
		return err == nil
	default:
		return false
	}
}

func containsAny(payload Payload, keys []string) bool {
	for _, key := range keys {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}

func decodeInto(payload Payload, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		TagName:     "json",
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(payload)); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

func sortFieldErrors(fieldErrors []errs.FieldError) []errs.FieldError {
	sort.Slice(fieldErrors, func(i, j int) bool {
		if fieldErrors[i].Field != fieldErrors[j].Field {
			return fieldErrors[i].Field < fieldErrors[j].Field
		}
		return fieldErrors[i].Error < fieldErrors[j].Error
	})
	return fieldErrors
}
