package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	invitedomain "github.com/ghuser/propstack/services/invite/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrInviteNotFound", invitedomain.ErrInviteNotFound, http.StatusNotFound},
		{"ErrInviteAlreadyExists", invitedomain.ErrInviteAlreadyExists, http.StatusConflict},
		{"ErrInviteAlreadyRedeemed", invitedomain.ErrInviteAlreadyRedeemed, http.StatusConflict},
		{"ErrInviteRevoked", invitedomain.ErrInviteRevoked, http.StatusConflict},
		{"ErrInviteExpired", invitedomain.ErrInviteExpired, http.StatusGone},
		{"ErrInvalidInviteCode", invitedomain.ErrInvalidInviteCode, http.StatusUnprocessableEntity},
		{"ErrInvalidInvite", invitedomain.ErrInvalidInvite, http.StatusUnprocessableEntity},
		{"ExhaustedAttemptsError", &invitedomain.ExhaustedAttemptsError{Attempts: 10}, http.StatusServiceUnavailable},
		{"wrapped ErrInviteNotFound", fmt.Errorf("get invite: %w", invitedomain.ErrInviteNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidInviteCode", fmt.Errorf("%w: too short", invitedomain.ErrInvalidInviteCode), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, invitedomain.ErrInviteNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, invitedomain.ErrInviteNotFound)

	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
