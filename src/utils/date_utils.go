package utils

import (
	"fmt"
	"time"
)

const isoDateLayout = "2006-01-02"

// ResolveAsOfDate validates an optional ISO "as of" date, defaulting to the
// current date when absent. The resolved value is echoed for observability;
// the engine itself does not use it yet.
func ResolveAsOfDate(asOf string) (string, error) {
	if asOf == "" {
		return time.Now().Format(isoDateLayout), nil
	}
	if _, err := time.Parse(isoDateLayout, asOf); err != nil {
		return "", fmt.Errorf("invalid as_of date %q, expected YYYY-MM-DD: %w", asOf, err)
	}
	return asOf, nil
}
