package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthRoute(t *testing.T) {
	h := testRouter(t, RouterConfig{})

	rr := doRequest(t, h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected body: %v", resp)
	}
}
