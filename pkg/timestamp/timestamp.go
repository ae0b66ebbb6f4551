// Package timestamp normalizes the ISO-8601 updated_at strings carried
// by contact records into comparable UTC instants.
package timestamp

import (
	"strings"

	"github.com/agentstation/utc"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
)

// layouts are the accepted timestamp forms, tried in order. The first
// layout that parses wins; exhausting the list is a malformed timestamp.
var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z",
}

// Parse converts an ISO-8601 timestamp string into a UTC instant.
// Fractional seconds before a trailing Z are stripped before parsing, so
// two timestamps differing only in sub-second digits compare as equal.
// A trailing Z resolves to offset +00:00.
//
// Returns an error satisfying errors.Is(err, errors.ErrMalformedTimestamp)
// when the string matches none of the accepted layouts.
func Parse(s string) (utc.Time, error) {
	normalized := Truncate(s)

	for _, layout := range layouts {
		if t, err := utc.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}

	return utc.Time{}, &errors.MalformedTimestampError{Value: s}
}

// Truncate strips the fractional-seconds component from a timestamp
// ending in the UTC designator. Anything between the first '.' and the
// trailing 'Z' is dropped; other strings pass through unchanged.
func Truncate(s string) string {
	if !strings.HasSuffix(s, "Z") {
		return s
	}
	prefix, _, found := strings.Cut(s, ".")
	if !found {
		return s
	}
	return prefix + "Z"
}
