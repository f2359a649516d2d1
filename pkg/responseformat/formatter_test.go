package responseformat

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type samplePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteResponseDefaultsToJSON(t *testing.T) {
	f := NewFormatter()
	req := httptest.NewRequest("GET", "/api/stations", nil)
	rec := httptest.NewRecorder()

	if err := f.WriteResponse(rec, req, samplePayload{Name: "PCD-001", Count: 3}, nil); err != nil {
		t.Fatalf("WriteResponse returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json content type, got %q", ct)
	}
	if cors := rec.Header().Get("Access-Control-Allow-Origin"); cors != "*" {
		t.Errorf("expected CORS header *, got %q", cors)
	}

	var got samplePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	if got.Name != "PCD-001" || got.Count != 3 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestWriteResponseMsgPack(t *testing.T) {
	f := NewFormatter()
	req := httptest.NewRequest("GET", "/api/stations?format=msgpack", nil)
	rec := httptest.NewRecorder()

	if err := f.WriteResponse(rec, req, samplePayload{Name: "PCD-002", Count: 7}, nil); err != nil {
		t.Fatalf("WriteResponse returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("expected application/x-msgpack content type, got %q", ct)
	}

	// MessagePack encoding uses the json struct tags, so the decoder must too
	var got samplePayload
	dec := msgpack.NewDecoder(rec.Body)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("failed to decode MessagePack response: %v", err)
	}
	if got.Name != "PCD-002" || got.Count != 7 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestWriteResponseWithStatus(t *testing.T) {
	f := NewFormatter()
	req := httptest.NewRequest("POST", "/api/config/stations", nil)
	rec := httptest.NewRecorder()

	if err := f.WriteResponseWithStatus(rec, req, 201, samplePayload{Name: "PCD-003"}, nil); err != nil {
		t.Fatalf("WriteResponseWithStatus returned error: %v", err)
	}

	if rec.Code != 201 {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
}

func TestWriteResponseCustomHeaders(t *testing.T) {
	f := NewFormatter()
	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()

	headers := map[string]string{"Cache-Control": "no-store"}
	if err := f.WriteResponse(rec, req, samplePayload{}, headers); err != nil {
		t.Fatalf("WriteResponse returned error: %v", err)
	}

	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("expected Cache-Control no-store, got %q", cc)
	}
}
