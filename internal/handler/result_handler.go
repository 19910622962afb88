package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/typeboard/internal/middleware"
	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/result"
)

// maxResultBodyBytes は結果送信リクエストボディの上限。
const maxResultBodyBytes = 4 << 10

// ResultServiceInterface は結果送信ハンドラーが必要とするサービスインターフェース。
type ResultServiceInterface interface {
	Submit(ctx context.Context, sub result.Submission) (*model.TestResult, error)
}

// submitResultResponse は POST /submit_result のレスポンスボディ。
type submitResultResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ResultHandler はテスト結果送信のHTTPハンドラー。
type ResultHandler struct {
	service ResultServiceInterface
}

// NewResultHandler はResultHandlerを生成する。
func NewResultHandler(service ResultServiceInterface) *ResultHandler {
	return &ResultHandler{service: service}
}

// Submit はテスト結果を記録する。
// POST /submit_result
// Body: {"email": "...", "wpm": 80, "accuracy": 97.5, "raw_wpm": 85}
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResultBodyBytes)

	var sub result.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, submitResultResponse{
			Success: false,
			Error:   "Request body must be a JSON object.",
			Code:    model.ErrCodeValidation,
		})
		return
	}

	if _, err := h.service.Submit(r.Context(), sub); err != nil {
		apiErr, ok := asAPIError(err)
		if !ok {
			slog.Error("unexpected submit error", slog.String("error", err.Error()))
			apiErr = model.NewDatabaseError()
		}
		middleware.WriteJSON(w, mapAPIErrorToHTTPStatus(apiErr), submitResultResponse{
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
		})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, submitResultResponse{Success: true})
}
