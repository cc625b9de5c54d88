package convert

import (
	"testing"

	"github.com/poiesic/lostvec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TextFields(t *testing.T) {
	c := NewConverter()

	item := c.Normalize(core.RawMessage{
		"item_id":     "item-1",
		"text":        "  lost   brown\twallet ",
		"description": "leather,\n well worn",
		"category":    nil,
		"location":    "central   station",
	})

	assert.Equal(t, "item-1", item.ItemID)
	assert.Equal(t, "lost brown wallet", item.Title)
	assert.Equal(t, "leather, well worn", item.Description)
	assert.Equal(t, "", item.Category)
	assert.Equal(t, "central station", item.Location)
	assert.Equal(t, "", item.DateLost)
}

func TestNormalize_TitleFallback(t *testing.T) {
	c := NewConverter()

	// Producers send either "text" or "title"; "text" wins when both appear.
	item := c.Normalize(core.RawMessage{"item_id": "x", "title": "red scarf"})
	assert.Equal(t, "red scarf", item.Title)

	item = c.Normalize(core.RawMessage{"item_id": "x", "text": "blue scarf", "title": "red scarf"})
	assert.Equal(t, "blue scarf", item.Title)
}

func TestNormalize_ContactInfo(t *testing.T) {
	tests := []struct {
		name string
		raw  core.RawMessage
		want string
	}{
		{
			name: "explicit contact_info wins",
			raw:  core.RawMessage{"contact_info": "call me", "contact_email": "a@b.c"},
			want: "call me",
		},
		{
			name: "email and phone joined",
			raw:  core.RawMessage{"contact_email": "a@b.c", "contact_phone": "555-0101"},
			want: "a@b.c, 555-0101",
		},
		{
			name: "email only",
			raw:  core.RawMessage{"contact_email": "a@b.c"},
			want: "a@b.c",
		},
		{
			name: "nothing",
			raw:  core.RawMessage{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewConverter().Normalize(tt.raw)
			assert.Equal(t, tt.want, item.ContactInfo)
		})
	}
}

func TestNormalize_ImageKeyPriority(t *testing.T) {
	c := NewConverter()

	// Given both image_key and image_url, the native key always wins.
	item := c.Normalize(core.RawMessage{
		"item_id":   "x",
		"text":      "wallet",
		"image_key": "/items/native.jpg",
		"image_url": "http://minio:9000/lost-items-images/items/from-url.jpg",
	})

	assert.Equal(t, "items/native.jpg", item.ImageKey)
	assert.Equal(t, 1, c.Stats().KeyFormat)
	assert.Equal(t, 0, c.Stats().URLFormat)
}

func TestNormalize_LegacyURLConversion(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantKey string
		wantErr bool
	}{
		{
			name:    "minio host strips bucket segment",
			url:     "http://minio:9000/lost-items-images/items/item123.jpg",
			wantKey: "items/item123.jpg",
		},
		{
			name:    "storage port recognized without host marker",
			url:     "http://storage.internal:9000/bucket/uploads/2025-06-01/a.png",
			wantKey: "uploads/2025-06-01/a.png",
		},
		{
			name:    "external URL synthesizes items/ key from filename",
			url:     "https://example.com/images/backpack.jpg",
			wantKey: "items/backpack.jpg",
		},
		{
			name:    "no filename extension fails conversion",
			url:     "https://example.com/images/backpack",
			wantErr: true,
		},
		{
			name:    "bare host fails conversion",
			url:     "https://example.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter()
			item := c.Normalize(core.RawMessage{"item_id": "x", "image_url": tt.url})

			if tt.wantErr {
				assert.Empty(t, item.ImageKey)
				assert.Equal(t, 1, c.Stats().Errors)
				return
			}
			assert.Equal(t, tt.wantKey, item.ImageKey)
			assert.Equal(t, 1, c.Stats().URLFormat)
		})
	}
}

func TestNormalize_NoImage(t *testing.T) {
	c := NewConverter()
	item := c.Normalize(core.RawMessage{"item_id": "x", "text": "wallet"})

	require.False(t, item.HasImage())
	assert.Equal(t, 1, c.Stats().NoImage)
}

func TestNormalize_StatsAccumulate(t *testing.T) {
	c := NewConverter()

	c.Normalize(core.RawMessage{"image_key": "a.jpg"})
	c.Normalize(core.RawMessage{"image_url": "http://minio:9000/bucket/b.jpg"})
	c.Normalize(core.RawMessage{})
	c.Normalize(core.RawMessage{"image_url": "https://example.com/nokey"})

	stats := c.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.KeyFormat)
	assert.Equal(t, 1, stats.URLFormat)
	assert.Equal(t, 1, stats.NoImage)
	assert.Equal(t, 1, stats.Errors)

	c.ResetStats()
	assert.Equal(t, Stats{}, c.Stats())
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"already canonical", "items/a.jpg", "items/a.jpg"},
		{"leading and trailing slashes", "/items/a.jpg/", "items/a.jpg"},
		{"backslashes rewritten", `items\sub\a.jpg`, "items/sub/a.jpg"},
		{"repeated slashes collapsed", "items//sub///a.jpg", "items/sub/a.jpg"},
		{"surrounding whitespace", "  items/a.jpg ", "items/a.jpg"},
		{"only slashes", "///", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalKey(tt.key)
			assert.Equal(t, tt.want, got)
			// Canonicalization is idempotent.
			assert.Equal(t, got, CanonicalKey(got))
		})
	}
}

func TestStringField_NumericCoercion(t *testing.T) {
	item := NewConverter().Normalize(core.RawMessage{"item_id": float64(42)})
	assert.Equal(t, "42", item.ItemID)
}
