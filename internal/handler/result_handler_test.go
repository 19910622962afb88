package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/result"
)

func postResult(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/submit_result", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeSubmitResponse(t *testing.T, w *httptest.ResponseRecorder) submitResultResponse {
	t.Helper()
	var resp submitResultResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestResultHandler_Submit_Success(t *testing.T) {
	var got result.Submission
	svc := &mockResultService{
		submitFn: func(ctx context.Context, sub result.Submission) (*model.TestResult, error) {
			got = sub
			return &model.TestResult{ID: 7}, nil
		},
	}
	h := NewResultHandler(svc)

	w := httptest.NewRecorder()
	h.Submit(w, postResult(`{"email":"a@x.com","wpm":80,"accuracy":97.5,"raw_wpm":85}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeSubmitResponse(t, w)
	if !resp.Success || resp.Error != "" {
		t.Errorf("response = %+v, want success", resp)
	}
	if got.Email != "a@x.com" || got.WPM == nil || *got.WPM != 80 ||
		got.Accuracy == nil || *got.Accuracy != 97.5 || got.RawWPM == nil || *got.RawWPM != 85 {
		t.Errorf("submission = %+v", got)
	}
}

func TestResultHandler_Submit_InvalidJSON_Returns400(t *testing.T) {
	called := false
	svc := &mockResultService{
		submitFn: func(ctx context.Context, sub result.Submission) (*model.TestResult, error) {
			called = true
			return nil, nil
		},
	}
	h := NewResultHandler(svc)

	w := httptest.NewRecorder()
	h.Submit(w, postResult(`not json`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeSubmitResponse(t, w)
	if resp.Success || resp.Code != model.ErrCodeValidation {
		t.Errorf("response = %+v", resp)
	}
	if called {
		t.Error("service should not be called for invalid JSON")
	}
}

func TestResultHandler_Submit_OversizedBody_Returns400(t *testing.T) {
	h := NewResultHandler(&mockResultService{})

	body := `{"email":"` + strings.Repeat("a", maxResultBodyBytes) + `"}`
	w := httptest.NewRecorder()
	h.Submit(w, postResult(body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestResultHandler_Submit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"user not found", model.NewUserNotFoundError(), http.StatusNotFound, model.ErrCodeUserNotFound, "User not found"},
		{"validation", model.NewValidationError("email, wpm, accuracy and raw_wpm are required."), http.StatusBadRequest, model.ErrCodeValidation, "email, wpm, accuracy and raw_wpm are required."},
		{"database", model.NewDatabaseError(), http.StatusInternalServerError, model.ErrCodeDatabase, "A database error occurred."},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeDatabase, "A database error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockResultService{
				submitFn: func(ctx context.Context, sub result.Submission) (*model.TestResult, error) {
					return nil, tt.err
				},
			}
			h := NewResultHandler(svc)

			w := httptest.NewRecorder()
			h.Submit(w, postResult(`{"email":"ghost@x.com","wpm":1,"accuracy":1,"raw_wpm":1}`))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeSubmitResponse(t, w)
			if resp.Success {
				t.Error("success should be false")
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}
