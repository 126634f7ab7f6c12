package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paisa/internal/domain/user"
	"paisa/internal/shared/auth"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockUserRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{"name": "Alice", "email": "alice@example.com", "password": "hunter22"},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
						return &user.User{ID: 1, Name: params.Name, Email: params.Email, PasswordHash: params.PasswordHash}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Email",
			body:           map[string]interface{}{"name": "Alice", "password": "hunter22"},
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Password",
			body:           map[string]interface{}{"name": "Alice", "email": "alice@example.com"},
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Email Taken",
			body: map[string]interface{}{"name": "Alice", "email": "alice@example.com", "password": "hunter22"},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
						return nil, user.ErrEmailTaken
					},
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockRepo(), auth.NewJWT("test-secret"))

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.HandleRegister(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp map[string]string
				json.NewDecoder(rr.Body).Decode(&resp)
				if resp["status"] != "success" {
					t.Errorf("status field = %q, want success", resp["status"])
				}
				if resp["token"] == "" {
					t.Error("token missing from register response")
				}
			}
		})
	}
}

func TestHandleLogin(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	knownUser := &user.User{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: hash}

	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockUserRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{"email": "alice@example.com", "password": "hunter22"},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
						return knownUser, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			body: map[string]interface{}{"email": "alice@example.com", "password": "wrong"},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
						return knownUser, nil
					},
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown Email",
			body: map[string]interface{}{"email": "nobody@example.com", "password": "hunter22"},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Fields",
			body:           map[string]interface{}{"email": "alice@example.com"},
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockRepo(), auth.NewJWT("test-secret"))

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.HandleLogin(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleLogin_SameErrorForBothFailures(t *testing.T) {
	hash, _ := auth.HashPassword("hunter22")
	known := &user.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}

	bodies := map[string]*user.User{
		`{"email":"nobody@example.com","password":"hunter22"}`: nil,
		`{"email":"alice@example.com","password":"wrong"}`:     known,
	}

	var messages []string
	for body, u := range bodies {
		repo := &MockUserRepo{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		handler := NewAuthHandler(repo, auth.NewJWT("test-secret"))

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, req)

		var resp map[string]string
		json.NewDecoder(rr.Body).Decode(&resp)
		messages = append(messages, resp["error"])
	}

	if messages[0] != messages[1] {
		t.Errorf("unknown email and wrong password must be indistinguishable: %q vs %q", messages[0], messages[1])
	}
}
