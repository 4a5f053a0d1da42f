package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"
)

func validateAndEcho() http.Handler {
	mw := ValidateRequest[*models.InterviewStartRequest]()
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := GetValidatedRequest[*models.InterviewStartRequest](r)
		w.Write([]byte(req.Candidate.Name))
	}))
}

func TestValidateRequestPassesValidPayload(t *testing.T) {
	body := `{"candidate": {"name": "Ada", "phone": "+15550001111"}, "jd_text": "jd"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	validateAndEcho().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("valid payload rejected: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Ada" {
		t.Fatalf("handler did not receive the validated request: %q", rec.Body.String())
	}
}

func TestValidateRequestRejectsInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	validateAndEcho().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_json") {
		t.Fatalf("error code missing from body: %s", rec.Body.String())
	}
}

func TestValidateRequestRejectsFailedValidation(t *testing.T) {
	body := `{"candidate": {"phone": "+15550001111"}, "jd_text": "jd"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	validateAndEcho().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a failing Validate, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing_name") {
		t.Fatalf("validation error code missing: %s", rec.Body.String())
	}
}
