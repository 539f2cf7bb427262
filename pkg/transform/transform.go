// Package transform coerces substrings extracted from command output into
// typed values of the JSON data model.
package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/arthur-debert/outparse/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind names a coercion
type Kind = string

const (
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Array   Kind = "array"
	MAC     Kind = "mac"
	// None passes the raw string through. Any unrecognised kind behaves the same.
	None Kind = ""
)

// Kinds returns the recognised non-default kinds
func Kinds() []Kind {
	return []Kind{Number, Boolean, Array, MAC}
}

// IsKnown reports whether kind is empty or one of Kinds
func IsKnown(kind string) bool {
	switch kind {
	case None, Number, Boolean, Array, MAC:
		return true
	}
	return false
}

// Value converts raw according to kind. Numbers become float64, booleans
// bool, arrays []interface{} of strings; mac and unknown kinds yield strings.
func Value(raw string, kind string) (interface{}, error) {
	switch kind {
	case Number:
		return parseNumber(raw)
	case Boolean:
		return parseBoolean(raw)
	case Array:
		return splitList(raw), nil
	case MAC:
		return cases.Lower(language.Und).String(raw), nil
	default:
		return raw, nil
	}
}

func parseNumber(raw string) (interface{}, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, conversionError(err, Number, raw)
	}
	// NaN and infinities have no JSON representation
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, conversionError(nil, Number, raw)
	}
	return f, nil
}

func parseBoolean(raw string) (interface{}, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, conversionError(nil, Boolean, raw)
	}
}

func splitList(raw string) []interface{} {
	items := make([]interface{}, 0)
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		items = append(items, piece)
	}
	return items
}

func conversionError(cause error, kind, raw string) *errors.ParseError {
	var err *errors.ParseError
	if cause != nil {
		err = errors.Wrapf(cause, errors.ErrValueConversion, "cannot convert %q to %s", raw, kind)
	} else {
		err = errors.Newf(errors.ErrValueConversion, "cannot convert %q to %s", raw, kind)
	}
	return err.WithDetail("kind", kind).WithDetail("value", raw)
}
