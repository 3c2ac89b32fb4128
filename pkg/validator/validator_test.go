package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	playground "github.com/go-playground/validator/v10"

	pkgvalidator "github.com/ghuser/propstack/pkg/validator"
)

type inviteReq struct {
	OrgID string `json:"org_id" validate:"required,uuid"`
	Email string `json:"email"  validate:"required,email"`
	Role  string `json:"role"   validate:"required,oneof=tenant landlord contractor"`
}

func TestValidate(t *testing.T) {
	t.Run("well-formed struct passes", func(t *testing.T) {
		req := inviteReq{
			OrgID: "550e8400-e29b-41d4-a716-446655440000",
			Email: "tenant@example.com",
			Role:  "tenant",
		}
		if err := pkgvalidator.Validate(&req); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("zero struct fails required", func(t *testing.T) {
		if err := pkgvalidator.Validate(&inviteReq{}); err == nil {
			t.Fatal("expected validation error for empty struct")
		}
	})
}

func TestFormatValidationErrors(t *testing.T) {
	t.Run("uses json names and readable messages", func(t *testing.T) {
		err := pkgvalidator.Validate(&inviteReq{OrgID: "not-a-uuid", Email: "nope", Role: "admin"})
		m := pkgvalidator.FormatValidationErrors(err)

		if m["org_id"] != "Must be a valid UUID" {
			t.Errorf("org_id: %q", m["org_id"])
		}
		if m["email"] != "Must be a valid email address" {
			t.Errorf("email: %q", m["email"])
		}
		if m["role"] != "Must be one of: tenant landlord contractor" {
			t.Errorf("role: %q", m["role"])
		}
	})

	t.Run("required beats format checks", func(t *testing.T) {
		err := pkgvalidator.Validate(&inviteReq{})
		m := pkgvalidator.FormatValidationErrors(err)
		if m["org_id"] != "This field is required" {
			t.Errorf("org_id: %q", m["org_id"])
		}
	})

	t.Run("non-validation errors yield an empty map", func(t *testing.T) {
		if m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie); len(m) != 0 {
			t.Errorf("expected empty map, got %v", m)
		}
	})
}

func TestRegister(t *testing.T) {
	if err := pkgvalidator.Register("allcaps", func(fl playground.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToUpper(s)
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	type req struct {
		Code string `json:"code" validate:"allcaps"`
	}
	if err := pkgvalidator.Validate(&req{Code: "ABC123"}); err != nil {
		t.Errorf("uppercase should pass: %v", err)
	}
	if err := pkgvalidator.Validate(&req{Code: "abc123"}); err == nil {
		t.Error("lowercase should fail the allcaps tag")
	}
}

func TestValidateRequest(t *testing.T) {
	post := func(body string) (*httptest.ResponseRecorder, *http.Request) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return httptest.NewRecorder(), r
	}

	t.Run("decodes and validates", func(t *testing.T) {
		w, r := post(`{"org_id":"550e8400-e29b-41d4-a716-446655440000","email":"t@example.com","role":"tenant"}`)

		req, ok := pkgvalidator.ValidateRequest[inviteReq](w, r)
		if !ok {
			t.Fatalf("expected ok, response: %s", w.Body.String())
		}
		if req.Role != "tenant" {
			t.Errorf("unexpected role: %q", req.Role)
		}
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		w, r := post(`{bad json`)

		if _, ok := pkgvalidator.ValidateRequest[inviteReq](w, r); ok {
			t.Fatal("expected ok=false")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid JSON") {
			t.Errorf("body: %s", w.Body.String())
		}
	})

	t.Run("failed tags are a 422 naming the fields", func(t *testing.T) {
		w, r := post(`{"email":"t@example.com","role":"tenant"}`)

		if _, ok := pkgvalidator.ValidateRequest[inviteReq](w, r); ok {
			t.Fatal("expected ok=false for missing org_id")
		}
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "org_id") {
			t.Errorf("expected org_id in body: %s", w.Body.String())
		}
	})
}
