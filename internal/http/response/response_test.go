package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestPaginatedMiddlePageHasBothLinks(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories/get?page=2&limit=5", nil)

	Paginated(rr, req, "Found successfully", []int{1}, Page{Number: 2, Limit: 5, TotalPages: 3, Path: "/api/categories/get"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := decodeEnvelope(t, rr)
	if body["status"] != "success" || body["page"] != "2" || body["limit"] != "5" || body["totalPages"] != "3" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if body["prevPage"] != "/api/categories/get?page=1&limit=5" {
		t.Fatalf("unexpected prevPage: %v", body["prevPage"])
	}
	if body["nextPage"] != "/api/categories/get?page=3&limit=5" {
		t.Fatalf("unexpected nextPage: %v", body["nextPage"])
	}
}

func TestPaginatedEdgesOmitLinks(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/get", nil)

	Paginated(rr, req, "Found successfully", []int{}, Page{Number: 1, Limit: 50, TotalPages: 1, Path: "/api/products/get"})

	body := decodeEnvelope(t, rr)
	if _, ok := body["prevPage"]; ok {
		t.Fatalf("first page must not carry prevPage: %v", body)
	}
	if _, ok := body["nextPage"]; ok {
		t.Fatalf("last page must not carry nextPage: %v", body)
	}
}

func TestErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/1/get", nil)

	Error(rr, req, http.StatusUnauthorized, "Invalid token", nil)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	body := decodeEnvelope(t, rr)
	if body["status"] != "error" || body["message"] != "Invalid token" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if _, ok := body["data"]; ok {
		t.Fatalf("nil data should be omitted: %v", body)
	}
}
