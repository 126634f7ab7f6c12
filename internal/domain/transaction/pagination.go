package transaction

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// CursorPage selects a window relative to a previously seen row. The cursor
// is the boundary row's identifier; the comparison key in the store is the
// composite (date, id) so that rows with identical dates are neither skipped
// nor repeated across pages.
type CursorPage struct {
	Cursor    *int64
	Direction Direction
	Limit     int
}

// ParseCursorPage reads cursor, direction and limit parameters. A malformed
// cursor or direction is a caller error; the limit is coerced (default 20,
// capped at 100) rather than rejected.
func ParseCursorPage(values url.Values) (CursorPage, error) {
	p := CursorPage{Direction: DirectionNext, Limit: parseLimit(values.Get("limit"))}

	if s := values.Get("cursor"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return CursorPage{}, fmt.Errorf("invalid cursor %q", s)
		}
		p.Cursor = &id
	}

	if s := values.Get("direction"); s != "" {
		switch Direction(s) {
		case DirectionNext, DirectionPrev:
			p.Direction = Direction(s)
		default:
			return CursorPage{}, fmt.Errorf("invalid direction %q: must be next or prev", s)
		}
	}

	return p, nil
}

// CursorInfo is the continuation metadata returned alongside a cursor page.
type CursorInfo struct {
	HasNext    bool   `json:"hasNext"`
	HasPrev    bool   `json:"hasPrev"`
	NextCursor *int64 `json:"nextCursor,omitempty"`
	PrevCursor *int64 `json:"prevCursor,omitempty"`
	Limit      int    `json:"limit"`
}

// ResolveCursorWindow trims a limit+1 fetch window down to the page and
// derives continuation metadata.
//
// For the next direction, rows must be in presentation order (date desc,
// id desc); the extra row signals more data ahead, and a supplied cursor
// implies a previous page. For the prev direction, rows must be in the
// repository's fetch order, ascending away from the cursor; the extra row
// signals more data further back, and the page is reversed into
// presentation order before returning.
func ResolveCursorWindow(rows []*Transaction, p CursorPage) ([]*Transaction, CursorInfo) {
	info := CursorInfo{Limit: p.Limit}
	extra := len(rows) > p.Limit
	if extra {
		rows = rows[:p.Limit]
	}

	switch p.Direction {
	case DirectionPrev:
		info.HasPrev = extra
		info.HasNext = p.Cursor != nil
		rows = reverse(rows)
	default:
		info.HasNext = extra
		info.HasPrev = p.Cursor != nil
	}

	if len(rows) > 0 {
		first, last := rows[0].ID, rows[len(rows)-1].ID
		info.PrevCursor = &first
		info.NextCursor = &last
	}

	return rows, info
}

func reverse(rows []*Transaction) []*Transaction {
	out := make([]*Transaction, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}

// Page is the offset strategy used by the search endpoint: 1-based page
// numbers over a stable (date desc, id desc) order.
type Page struct {
	Page  int
	Limit int
}

// ParsePage coerces page and limit parameters; unusable values fall back to
// defaults instead of failing.
func ParsePage(values url.Values) Page {
	page := 1
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 1 {
		page = n
	}
	return Page{Page: page, Limit: parseLimit(values.Get("limit"))}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo is the pagination metadata for the search endpoint. Position is
// communicated by the page number, so there is no hasPrev.
type PageInfo struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"hasNext"`
}

// ResolvePageWindow trims a limit+1 fetch window and reports whether a
// further page exists, without a separate count query.
func ResolvePageWindow(rows []*Transaction, p Page) ([]*Transaction, PageInfo) {
	info := PageInfo{Page: p.Page, Limit: p.Limit, HasNext: len(rows) > p.Limit}
	if info.HasNext {
		rows = rows[:p.Limit]
	}
	return rows, info
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
