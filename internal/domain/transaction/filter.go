package transaction

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TagsNone is the sentinel value for the tags parameter selecting
// transactions with an empty tag set.
const TagsNone = "none"

// Filter is a normalized query over a user's transactions. The owner and
// deleted=false predicates are not represented here; the repository adds
// them to every query unconditionally.
type Filter struct {
	Type      *Type
	TagIDs    []int64
	Untagged  bool
	StartDate *time.Time
	EndDate   *time.Time
	IDs       []int64
}

// ParseFilter builds a Filter from raw query parameters.
//
// An absent tags parameter means no tag filter at all; a present-but-empty
// value (or the literal "none") selects only untagged transactions. The two
// must not be conflated.
func ParseFilter(values url.Values) (Filter, error) {
	var f Filter

	if typ := values.Get("type"); typ != "" {
		t, err := ParseType(typ)
		if err != nil {
			return Filter{}, err
		}
		f.Type = &t
	}

	if _, ok := values["tags"]; ok {
		raw := values.Get("tags")
		if raw == "" || raw == TagsNone {
			f.Untagged = true
		} else {
			ids, err := parseIDList("tags", raw)
			if err != nil {
				return Filter{}, err
			}
			f.TagIDs = ids
		}
	}

	if s := values.Get("startDate"); s != "" {
		t, err := parseDate("startDate", s)
		if err != nil {
			return Filter{}, err
		}
		f.StartDate = &t
	}
	if s := values.Get("endDate"); s != "" {
		t, err := parseDate("endDate", s)
		if err != nil {
			return Filter{}, err
		}
		f.EndDate = &t
	}

	if s := values.Get("_ids"); s != "" {
		ids, err := parseIDList("_ids", s)
		if err != nil {
			return Filter{}, err
		}
		f.IDs = ids
	}

	return f, nil
}

func parseIDList(param, raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q in %s", p, param)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDate(param, s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: use YYYY-MM-DD or RFC 3339", param, s)
	}
	return t, nil
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
