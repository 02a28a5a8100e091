package handlers

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1, 2,3")
	if err != nil {
		t.Fatalf("parseIDList returned error: %v", err)
	}
	if !slices.Equal(ids, []int64{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", ids)
	}

	if _, err := parseIDList(""); err == nil {
		t.Fatalf("expected error for empty list")
	}
	if _, err := parseIDList("1,x"); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
}

func TestAssignments_InvalidChannel(t *testing.T) {
	e := echo.New()
	handler := NewFunnelHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/funnels/assignments?channel=pigeon&messageIds=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Assignments(c); err != nil {
		t.Fatalf("Assignments returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
