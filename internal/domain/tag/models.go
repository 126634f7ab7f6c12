package tag

import (
	"errors"
	"time"
)

var ErrTagNotFound = errors.New("tag not found")

type Tag struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Label     string    `json:"label"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type CreateTagParams struct {
	Label string
}

func (p *CreateTagParams) Validate() error {
	if p.Label == "" {
		return errors.New("label is required")
	}
	if len(p.Label) > 255 {
		return errors.New("label must be 255 characters or less")
	}
	return nil
}

type UpdateTagParams struct {
	Label string
}

func (p *UpdateTagParams) Validate() error {
	if p.Label == "" {
		return errors.New("label is required")
	}
	if len(p.Label) > 255 {
		return errors.New("label must be 255 characters or less")
	}
	return nil
}
