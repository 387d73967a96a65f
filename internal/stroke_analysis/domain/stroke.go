package domain

import (
	"fmt"
	"strings"
)

// StrokeType is the categorical label of a tennis swing.
type StrokeType string

const (
	StrokeForehand StrokeType = "forehand"
	StrokeBackhand StrokeType = "backhand"
	StrokeServe    StrokeType = "serve"
	StrokeVolley   StrokeType = "volley"
)

// DefaultStroke is preselected on the upload form.
const DefaultStroke = StrokeForehand

// AllStrokes lists the stroke types in the order the form offers them.
func AllStrokes() []StrokeType {
	return []StrokeType{StrokeForehand, StrokeBackhand, StrokeServe, StrokeVolley}
}

// ParseStroke accepts any casing and surrounding whitespace.
func ParseStroke(s string) (StrokeType, error) {
	st := StrokeType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStrokes() {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStroke, s)
}

// Label is the display form, e.g. "Forehand".
func (s StrokeType) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s StrokeType) String() string { return string(s) }
