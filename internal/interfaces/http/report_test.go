package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paisa/internal/domain/report"
)

// MockReportRepo implements report.Repository for testing
type MockReportRepo struct {
	CreateFunc func(ctx context.Context, ownerID int64, params report.CreateReportParams) (*report.Report, error)
}

func (m *MockReportRepo) Create(ctx context.Context, ownerID int64, params report.CreateReportParams) (*report.Report, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, params)
	}
	return nil, nil
}

func TestHandleReports(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedType   report.ReportType
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"type":        "spam",
				"description": "repeated promotional content",
				"messages": []map[string]string{
					{"role": "user", "content": "hello"},
				},
			},
			expectedStatus: http.StatusCreated,
			expectedType:   report.TypeSpam,
		},
		{
			name:           "Missing type falls back to other",
			body:           map[string]interface{}{"description": "something odd"},
			expectedStatus: http.StatusCreated,
			expectedType:   report.TypeOther,
		},
		{
			name:           "Unknown type rejected",
			body:           map[string]interface{}{"type": "dislike"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Message missing content rejected",
			body: map[string]interface{}{
				"type":     "spam",
				"messages": []map[string]string{{"role": "user"}},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotParams report.CreateReportParams
			repo := &MockReportRepo{
				CreateFunc: func(ctx context.Context, ownerID int64, params report.CreateReportParams) (*report.Report, error) {
					gotParams = params
					return &report.Report{
						ID:          1,
						OwnerID:     ownerID,
						Type:        params.Type,
						Description: params.Description,
						Messages:    params.Messages,
						CreatedAt:   time.Now(),
					}, nil
				},
			}
			handler := NewReportHandler(repo)

			body, _ := json.Marshal(tt.body)
			req := authedRequest(http.MethodPost, "/reports", body)
			rr := httptest.NewRecorder()
			handler.HandleReports(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				if gotParams.Type != tt.expectedType {
					t.Errorf("stored type = %q, want %q", gotParams.Type, tt.expectedType)
				}

				var resp struct {
					Success bool           `json:"success"`
					Data    ReportResponse `json:"data"`
				}
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if !resp.Success {
					t.Error("success = false, want true")
				}
				if resp.Data.ID != 1 {
					t.Errorf("data.id = %d, want 1", resp.Data.ID)
				}
			}
		})
	}
}

func TestHandleReports_MethodNotAllowed(t *testing.T) {
	handler := NewReportHandler(&MockReportRepo{})

	req := authedRequest(http.MethodGet, "/reports", nil)
	rr := httptest.NewRecorder()
	handler.HandleReports(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
