package transaction

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseSearchQuery_Select(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantSelect []string
		wantErr    bool
	}{
		{
			name:       "no select means default projection",
			query:      "label=coffee",
			wantSelect: nil,
		},
		{
			name:       "id prepended when not named",
			query:      "select=label,amount",
			wantSelect: []string{"id", "label", "amount"},
		},
		{
			name:       "id kept in caller order when named",
			query:      "select=label,id",
			wantSelect: []string{"label", "id"},
		},
		{
			name:       "explicit id exclusion",
			query:      "select=label,-id",
			wantSelect: []string{"label"},
		},
		{
			name:       "exclusion wins over positive mention",
			query:      "select=id,label,-id",
			wantSelect: []string{"label"},
		},
		{
			name:       "duplicates collapsed",
			query:      "select=label,label,date",
			wantSelect: []string{"id", "label", "date"},
		},
		{
			name:    "unknown field rejected",
			query:   "select=label,owner",
			wantErr: true,
		},
		{
			name:    "internal field not selectable",
			query:   "select=deleted",
			wantErr: true,
		},
		{
			name:    "blank list rejected",
			query:   "select=,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			q, err := ParseSearchQuery(values)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSearchQuery(%q) accepted bad select", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSearchQuery() failed: %v", err)
			}
			if !reflect.DeepEqual(q.Select, tt.wantSelect) {
				t.Errorf("Select = %v, want %v", q.Select, tt.wantSelect)
			}
		})
	}
}

func TestParseSearchQuery_CombinesFilter(t *testing.T) {
	values, _ := url.ParseQuery("label=coffee&tags=none&type=expense&startDate=2025-01-01")
	q, err := ParseSearchQuery(values)
	if err != nil {
		t.Fatalf("ParseSearchQuery() failed: %v", err)
	}
	if q.Label != "coffee" {
		t.Errorf("Label = %q, want coffee", q.Label)
	}
	if !q.Untagged {
		t.Error("Untagged = false, want true")
	}
	if q.Type == nil || *q.Type != TypeExpense {
		t.Errorf("Type = %v, want expense", q.Type)
	}
	if q.StartDate == nil {
		t.Error("StartDate missing")
	}
}

func TestParseSearchQuery_PropagatesFilterErrors(t *testing.T) {
	values, _ := url.ParseQuery("tags=1,nope")
	if _, err := ParseSearchQuery(values); err == nil {
		t.Error("ParseSearchQuery() accepted malformed tag filter")
	}
}
