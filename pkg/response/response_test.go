package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestList_EmptyDataRendersExplicitEmptyList(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, rec)

	if err := List(c, []int{}, 0); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	// The data key must be present and be [] rather than null or absent.
	data, ok := body["data"]
	if !ok {
		t.Fatalf("expected data key in response")
	}
	if string(data) != "[]" {
		t.Errorf("expected data=[], got %s", data)
	}
}

func TestList_CountMatches(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, rec)

	data := []int{1, 2, 3}
	if err := List(c, data, len(data)); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	var body ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if !body.Success {
		t.Errorf("expected Success=true, got false")
	}
	if body.Count != 3 {
		t.Errorf("expected Count=3, got %d", body.Count)
	}
}

func TestBadRequest_ErrorEnvelope(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, rec)

	if err := BadRequestWithMessage(c, "bad input"); err != nil {
		t.Fatalf("BadRequestWithMessage returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body.Success {
		t.Errorf("expected Success=false, got true")
	}
	if body.Error != "bad input" {
		t.Errorf("expected error %q, got %q", "bad input", body.Error)
	}
}
