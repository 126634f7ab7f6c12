package report

import (
	"errors"
	"fmt"
	"time"
)

// ReportType is a closed enum; the zero-value input maps to TypeOther.
type ReportType string

const (
	TypeOffensive     ReportType = "offensive"
	TypeNotCorrect    ReportType = "not correct"
	TypeSpam          ReportType = "spam"
	TypeInappropriate ReportType = "inappropriate"
	TypeHarassment    ReportType = "harassment"
	TypeOther         ReportType = "other"
)

func ParseReportType(s string) (ReportType, error) {
	if s == "" {
		return TypeOther, nil
	}
	switch ReportType(s) {
	case TypeOffensive, TypeNotCorrect, TypeSpam, TypeInappropriate, TypeHarassment, TypeOther:
		return ReportType(s), nil
	}
	return "", fmt.Errorf("invalid report type %q", s)
}

// Message is one role/content pair of the conversation being reported.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Report struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"-"`
	Type        ReportType `json:"type"`
	Description string     `json:"description"`
	Messages    []Message  `json:"messages"`
	Deleted     bool       `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"-"`
}

type CreateReportParams struct {
	Type        ReportType
	Description string
	Messages    []Message
}

func (p *CreateReportParams) Validate() error {
	for i, m := range p.Messages {
		if m.Role == "" || m.Content == "" {
			return fmt.Errorf("message %d: role and content are required", i)
		}
	}
	if p.Type == "" {
		return errors.New("type is required")
	}
	return nil
}
