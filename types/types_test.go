package types

import (
	"encoding/json"
	"testing"
)

func TestResult_URL(t *testing.T) {
	r := &Result{
		URLs:  map[int]string{18: "https://example.com/18", 140: "https://example.com/140"},
		Itags: []int{18, 140},
	}

	if u, ok := r.URL(18); !ok || u != "https://example.com/18" {
		t.Errorf("URL(18) = %q, %v", u, ok)
	}
	if _, ok := r.URL(22); ok {
		t.Error("URL(22) should be absent")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}

	var nilResult *Result
	if _, ok := nilResult.URL(18); ok || nilResult.Len() != 0 {
		t.Error("nil result should be empty")
	}
}

func TestResult_JSON(t *testing.T) {
	r := Result{
		Meta: VideoMeta{ID: "dQw4w9WgXcQ", Title: "Title", ViewCount: 42},
		URLs: map[int]string{18: "u"},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	meta, ok := decoded["meta"].(map[string]any)
	if !ok || meta["id"] != "dQw4w9WgXcQ" {
		t.Errorf("unexpected meta: %v", decoded["meta"])
	}
	if _, ok := decoded["hlsManifestUrl"]; ok {
		t.Error("empty manifest URL should be omitted")
	}
}
