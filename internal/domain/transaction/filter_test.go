package transaction

import (
	"net/url"
	"testing"
	"time"
)

func TestParseFilter_TagsSentinel(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantUntagged bool
		wantTagIDs   []int64
	}{
		{
			name:         "absent tags means no tag filter",
			query:        "type=expense",
			wantUntagged: false,
			wantTagIDs:   nil,
		},
		{
			name:         "none sentinel selects untagged",
			query:        "tags=none",
			wantUntagged: true,
		},
		{
			name:         "empty value selects untagged",
			query:        "tags=",
			wantUntagged: true,
		},
		{
			name:       "concrete list",
			query:      "tags=3,1,2",
			wantTagIDs: []int64{3, 1, 2},
		},
		{
			name:       "list with spaces and empty entries",
			query:      "tags=1,+,2",
			wantTagIDs: []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}
			f, err := ParseFilter(values)
			if err != nil {
				t.Fatalf("ParseFilter() failed: %v", err)
			}
			if f.Untagged != tt.wantUntagged {
				t.Errorf("Untagged = %v, want %v", f.Untagged, tt.wantUntagged)
			}
			if len(f.TagIDs) != len(tt.wantTagIDs) {
				t.Fatalf("TagIDs = %v, want %v", f.TagIDs, tt.wantTagIDs)
			}
			for i, id := range tt.wantTagIDs {
				if f.TagIDs[i] != id {
					t.Errorf("TagIDs[%d] = %d, want %d", i, f.TagIDs[i], id)
				}
			}
		})
	}
}

func TestParseFilter_MalformedInputs(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"malformed tag id", "tags=1,abc"},
		{"malformed _ids entry", "_ids=12,x7"},
		{"invalid type", "type=transfer"},
		{"invalid startDate", "startDate=yesterday"},
		{"invalid endDate", "endDate=31-01-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			if _, err := ParseFilter(values); err == nil {
				t.Errorf("ParseFilter(%q) accepted malformed input", tt.query)
			}
		})
	}
}

func TestParseFilter_DateBounds(t *testing.T) {
	values, _ := url.ParseQuery("startDate=2025-01-01&endDate=2025-02-01T12:30:00Z")
	f, err := ParseFilter(values)
	if err != nil {
		t.Fatalf("ParseFilter() failed: %v", err)
	}

	wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if f.StartDate == nil || !f.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", f.StartDate, wantStart)
	}
	wantEnd := time.Date(2025, 2, 1, 12, 30, 0, 0, time.UTC)
	if f.EndDate == nil || !f.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", f.EndDate, wantEnd)
	}
}

func TestParseFilter_IndependentBounds(t *testing.T) {
	values, _ := url.ParseQuery("startDate=2025-01-01")
	f, err := ParseFilter(values)
	if err != nil {
		t.Fatalf("ParseFilter() failed: %v", err)
	}
	if f.StartDate == nil {
		t.Error("StartDate missing")
	}
	if f.EndDate != nil {
		t.Errorf("EndDate = %v, want nil", f.EndDate)
	}
}

func TestParseFilter_IDs(t *testing.T) {
	values, _ := url.ParseQuery("_ids=5,9")
	f, err := ParseFilter(values)
	if err != nil {
		t.Fatalf("ParseFilter() failed: %v", err)
	}
	if len(f.IDs) != 2 || f.IDs[0] != 5 || f.IDs[1] != 9 {
		t.Errorf("IDs = %v, want [5 9]", f.IDs)
	}
}

func TestParseType(t *testing.T) {
	if _, err := ParseType("income"); err != nil {
		t.Errorf("ParseType(income) failed: %v", err)
	}
	if _, err := ParseType("expense"); err != nil {
		t.Errorf("ParseType(expense) failed: %v", err)
	}
	if _, err := ParseType("INCOME"); err == nil {
		t.Error("ParseType accepted uppercase value")
	}
	if _, err := ParseType(""); err == nil {
		t.Error("ParseType accepted empty value")
	}
}
