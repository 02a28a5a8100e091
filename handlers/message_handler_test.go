package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentkit/outreach-console/pkg/response"
	validatorpkg "github.com/rentkit/outreach-console/pkg/validator"
)

// TestCreate_BadJSON verifies that invalid JSON returns 400 Bad Request.
func TestCreate_BadJSON(t *testing.T) {
	e := echo.New()
	// Validator is not needed here because Bind will fail before Validate is called.
	handler := NewMessageHandler(nil)

	// Malformed JSON (missing closing quote / brace)
	reqBody := `{"channel": "sms", "contentName":`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var resp response.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}

	if resp.Success {
		t.Fatalf("expected Success=false, got true")
	}
	if resp.Error == "" {
		t.Fatalf("expected Error to be non-empty")
	}
}

// TestCreate_MissingRequiredFields verifies that validation failure returns
// 422 via the validation error handler, before the service is touched.
func TestCreate_MissingRequiredFields(t *testing.T) {
	e := echo.New()
	// Use the real custom validator so we exercise the normal flow.
	e.Validator = validatorpkg.New()

	// service is nil on purpose; validation must fail before it is called.
	handler := NewMessageHandler(nil)

	reqBody := `{"channel": "sms", "messageType": "broadcast"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	var resp validatorpkg.ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}

	if resp.Success {
		t.Fatalf("expected Success=false, got true")
	}
	if resp.Error != "Validation failed" {
		t.Fatalf("expected Error=%q, got %q", "Validation failed", resp.Error)
	}
	for _, field := range []string{"contextCategory", "contentName", "content"} {
		if _, ok := resp.Details[field]; !ok {
			t.Errorf("expected Details to contain %q", field)
		}
	}
}

// TestCreate_InvalidMessageType verifies the oneof constraint on the bucket.
func TestCreate_InvalidMessageType(t *testing.T) {
	e := echo.New()
	e.Validator = validatorpkg.New()
	handler := NewMessageHandler(nil)

	reqBody := `{"channel": "sms", "contextCategory": "Welcome", "contentName": "Intro", "content": "Hi!", "messageType": "newsletter"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
}

// TestList_MissingTypeParam verifies that the bucket selector is required.
func TestList_MissingTypeParam(t *testing.T) {
	e := echo.New()
	handler := NewMessageHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

// TestList_InvalidTypeParam verifies that unknown buckets are rejected.
func TestList_InvalidTypeParam(t *testing.T) {
	e := echo.New()
	handler := NewMessageHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages?type=push_notification", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

// TestMarkSent_InvalidChannel verifies channel validation on id-routed ops.
func TestMarkSent_InvalidChannel(t *testing.T) {
	e := echo.New()
	handler := NewMessageHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/1/send?channel=fax", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.MarkSent(c); err != nil {
		t.Fatalf("MarkSent returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

// TestDelete_InvalidID verifies non-numeric ids are rejected up front.
func TestDelete_InvalidID(t *testing.T) {
	e := echo.New()
	handler := NewMessageHandler(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/messages/abc?channel=sms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
