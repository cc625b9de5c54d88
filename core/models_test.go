package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "same payload produces same fingerprint",
			payload: `{"item_id":"x1"}`,
		},
		{
			name:    "empty payload",
			payload: "",
		},
		{
			name:    "long payload",
			payload: strings.Repeat("lost brown leather wallet ", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp1 := Fingerprint([]byte(tt.payload))
			fp2 := Fingerprint([]byte(tt.payload))

			if fp1 != fp2 {
				t.Errorf("Fingerprint() produced different values for same payload: %s vs %s", fp1, fp2)
			}
			if len(fp1) != 16 {
				t.Errorf("Fingerprint() length = %d, want 16 hex chars", len(fp1))
			}
		})
	}
}

func TestFingerprint_Different(t *testing.T) {
	fp1 := Fingerprint([]byte("payload1"))
	fp2 := Fingerprint([]byte("payload2"))

	if fp1 == fp2 {
		t.Errorf("Fingerprint() produced same value for different payloads")
	}
}

func TestOutputRecord_WireFormat(t *testing.T) {
	record := OutputRecord{
		ItemID:            "item-42",
		Embedding:         []float32{0.5, 0.5},
		Title:             "black umbrella",
		Timestamp:         "2025-06-01T12:00:00Z",
		HasImageEmbedding: true,
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// Field names are the wire contract consumed by the indexing service.
	for _, field := range []string{
		`"item_id"`, `"embedding"`, `"title"`, `"description"`, `"category"`,
		`"location"`, `"date_lost"`, `"image_key"`, `"contact_info"`,
		`"timestamp"`, `"has_image_embedding"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("OutputRecord JSON missing field %s: %s", field, data)
		}
	}
}

func TestNormalizedItem_HasImage(t *testing.T) {
	item := &NormalizedItem{ItemID: "x1"}
	if item.HasImage() {
		t.Error("HasImage() = true for item without image key")
	}

	item.ImageKey = "items/a.jpg"
	if !item.HasImage() {
		t.Error("HasImage() = false for item with image key")
	}
}
