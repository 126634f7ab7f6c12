package transaction

import (
	"fmt"
	"net/url"
	"strings"
)

// PublicFields are the transaction fields a caller may project with the
// select parameter. Owner, deleted flag and audit timestamps are internal
// and never selectable.
var PublicFields = []string{"id", "label", "amount", "type", "tags", "date"}

// SearchQuery combines the common filter with the search-only inputs:
// a free-text label match and an optional field projection.
type SearchQuery struct {
	Filter
	Label  string
	Select []string
}

// ParseSearchQuery builds a SearchQuery from raw query parameters. The
// select list is validated against PublicFields; unknown names are rejected
// rather than passed through. The id field is always projected unless the
// caller excludes it with "-id".
func ParseSearchQuery(values url.Values) (SearchQuery, error) {
	f, err := ParseFilter(values)
	if err != nil {
		return SearchQuery{}, err
	}

	q := SearchQuery{Filter: f, Label: values.Get("label")}

	if s := values.Get("select"); s != "" {
		sel, err := parseSelect(s)
		if err != nil {
			return SearchQuery{}, err
		}
		q.Select = sel
	}

	return q, nil
}

func parseSelect(raw string) ([]string, error) {
	allowed := make(map[string]bool, len(PublicFields))
	for _, f := range PublicFields {
		allowed[f] = true
	}

	fields := make([]string, 0, 4)
	seen := make(map[string]bool)
	excludeID := false

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "-id" {
			excludeID = true
			continue
		}
		if !allowed[part] {
			return nil, fmt.Errorf("unknown field %q in select", part)
		}
		if !seen[part] {
			seen[part] = true
			fields = append(fields, part)
		}
	}

	if len(fields) == 0 && !excludeID {
		return nil, fmt.Errorf("select must name at least one field")
	}
	if !excludeID && !seen["id"] {
		fields = append([]string{"id"}, fields...)
	}
	if excludeID && seen["id"] {
		// "-id" wins over a positive mention
		out := fields[:0]
		for _, f := range fields {
			if f != "id" {
				out = append(out, f)
			}
		}
		fields = out
	}

	return fields, nil
}
