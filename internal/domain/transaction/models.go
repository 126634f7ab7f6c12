package transaction

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	ErrNotFound   = errors.New("transaction not found")
	ErrUnknownTag = errors.New("one or more tags do not exist")
)

// Type carries the sign of a transaction. Amounts are stored as magnitudes;
// income vs expense is expressed here, never in the amount itself.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeIncome, TypeExpense:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid type %q: must be income or expense", s)
}

type Transaction struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Label     string    `json:"label"`
	Amount    float64   `json:"amount"`
	Type      Type      `json:"type"`
	TagIDs    []int64   `json:"tags"`
	Date      time.Time `json:"date"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type CreateParams struct {
	Label  string
	Amount float64
	Type   Type
	TagIDs []int64
	Date   *time.Time
}

func (p *CreateParams) Validate() error {
	if p.Label == "" {
		return errors.New("label is required")
	}
	if p.Type != TypeIncome && p.Type != TypeExpense {
		return fmt.Errorf("invalid type %q: must be income or expense", p.Type)
	}
	return nil
}

// Normalize enforces the at-rest invariants: the amount is a magnitude and
// the tag list behaves as a set.
func (p *CreateParams) Normalize() {
	p.Amount = math.Abs(p.Amount)
	p.TagIDs = dedupeIDs(p.TagIDs)
}

// UpdateParams carries a partial update. Nil fields are left unchanged;
// a non-nil empty TagIDs clears all tags. Type and owner are immutable.
type UpdateParams struct {
	Label  *string
	Amount *float64
	TagIDs []int64
	Date   *time.Time
}

func (p *UpdateParams) Validate() error {
	if p.Label != nil && *p.Label == "" {
		return errors.New("label must not be empty")
	}
	return nil
}

func (p *UpdateParams) Normalize() {
	if p.Amount != nil {
		abs := math.Abs(*p.Amount)
		p.Amount = &abs
	}
	if p.TagIDs != nil {
		p.TagIDs = dedupeIDs(p.TagIDs)
	}
}

func dedupeIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
