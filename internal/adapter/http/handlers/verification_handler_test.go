package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bfinancial_sdk/internal/adapter/http/handlers/mocks"
	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newVerificationRouter(t *testing.T) (*gin.Engine, *mocks.MockIVerificationUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIVerificationUseCase(ctrl)
	h := NewVerificationHandler(uc, nil)

	r := gin.New()
	r.POST("/v1/payments/:payment_id/verifications", h.StartVerification)
	r.GET("/v1/payments/:payment_id/verifications", h.ListVerifications)
	r.GET("/v1/verifications/:verification_id", h.GetVerification)
	return r, uc
}

func TestVerificationHandler_StartVerification(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing target", func(t *testing.T) {
		r, _ := newVerificationRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pix-1/verifications", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		r, uc := newVerificationRouter(t)
		uc.EXPECT().Start(gomock.Any(), "pix-1", "paid").Return(entities.VerificationRun{}, usecase.ErrInvalidTargetStatus)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pix-1/verifications", bytes.NewBufferString(`{"target_status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("shutting down", func(t *testing.T) {
		r, uc := newVerificationRouter(t)
		uc.EXPECT().Start(gomock.Any(), "pix-1", "approved").Return(entities.VerificationRun{}, usecase.ErrVerificationClosed)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pix-1/verifications", bytes.NewBufferString(`{"target_status":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		r, uc := newVerificationRouter(t)
		now := time.Now().UTC()
		uc.EXPECT().Start(gomock.Any(), "pix-1", "approved").Return(entities.VerificationRun{
			ID:           "run-1",
			PaymentID:    "pix-1",
			TargetStatus: "approved",
			State:        entities.VerificationStateRunning,
			CreatedAt:    now,
			UpdatedAt:    now,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pix-1/verifications", bytes.NewBufferString(`{"target_status":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["id"] != "run-1" || body["state"] != "running" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestVerificationHandler_Getters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list", func(t *testing.T) {
		r, uc := newVerificationRouter(t)
		uc.EXPECT().ListByPaymentID(gomock.Any(), "pix-1").Return([]entities.VerificationRun{{ID: "run-1"}, {ID: "run-2"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/pix-1/verifications", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte(`"run-2"`)) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		r, uc := newVerificationRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "run-9").Return(entities.VerificationRun{}, usecase.ErrVerificationNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/verifications/run-9", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if decodeBody(t, w)["code"] != "VERIFICATION_NOT_FOUND" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get failed run", func(t *testing.T) {
		r, uc := newVerificationRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "run-1").Return(entities.VerificationRun{
			ID:          "run-1",
			State:       entities.VerificationStateFailed,
			Message:     "Received status 'rejected', but expected 'approved'",
			FailureKind: entities.VerificationKindStatusMismatch,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/verifications/run-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["failure_kind"] != "status_mismatch" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
