package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestUnknownRoute(t *testing.T) {
	h := testRouter(t, RouterConfig{})

	rr := doRequest(t, h, http.MethodGet, "/nope", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != codeNotFound {
		t.Fatalf("unexpected code: %s", resp.Code)
	}
}
