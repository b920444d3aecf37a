package extract

import (
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Filter runs a jq expression over a decoded JSON value. A single result is
// returned as is, several results as a slice.
func Filter(value any, expr string) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return value, nil
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	iter := query.Run(value)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("filter error: %w", err)
		}
		results = append(results, v)
	}

	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}
