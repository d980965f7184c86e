package dataset

import (
	"strconv"
	"strings"
	"time"
)

// naTokens are cell values treated as missing, compared case-insensitively
// after trimming. Mirrors the usual pandas-style NA vocabulary.
var naTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// IsMissing reports whether a raw cell value counts as a missing observation.
func IsMissing(s string) bool {
	_, ok := naTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseNumber parses a cell as a float. Leading and trailing whitespace is
// ignored; anything else must be a plain decimal or scientific literal.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// timeLayouts are the datetime shapes recognized during type inference.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
}

// ParseTime parses a cell against the recognized datetime layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// kindThreshold is the share of non-missing cells that must parse as a type
// for the column to take that type.
const kindThreshold = 0.95

// inferKind decides a column's kind from its values. Numeric wins over
// datetime; columns without any parseable majority are categorical, as is a
// column with no non-missing values at all.
func inferKind(values []string) Kind {
	total := 0
	numeric := 0
	datetime := 0
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		total++
		if _, ok := ParseNumber(v); ok {
			numeric++
			continue
		}
		if _, ok := ParseTime(v); ok {
			datetime++
		}
	}

	if total == 0 {
		return KindCategorical
	}
	if float64(numeric)/float64(total) >= kindThreshold {
		return KindNumeric
	}
	if float64(datetime)/float64(total) >= kindThreshold {
		return KindDatetime
	}
	return KindCategorical
}
