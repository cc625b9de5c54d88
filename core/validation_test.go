package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *NormalizedItem
		wantErr error
	}{
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidItem,
		},
		{
			name:    "missing item_id",
			item:    &NormalizedItem{Title: "lost wallet"},
			wantErr: ErrMissingItemID,
		},
		{
			name:    "no text content",
			item:    &NormalizedItem{ItemID: "x1", Location: "main station"},
			wantErr: ErrNoTextContent,
		},
		{
			name: "image key with newline",
			item: &NormalizedItem{ItemID: "x1", Title: "wallet", ImageKey: "items/a\n.jpg"},
			wantErr: ErrInvalidImageKey,
		},
		{
			name: "image key exceeds length limit",
			item: &NormalizedItem{ItemID: "x1", Title: "wallet", ImageKey: strings.Repeat("a", 1025)},
			wantErr: ErrInvalidImageKey,
		},
		{
			name: "valid text-only item",
			item: &NormalizedItem{ItemID: "x1", Title: "lost wallet"},
		},
		{
			name: "valid item with image",
			item: &NormalizedItem{ItemID: "x1", Description: "brown leather", ImageKey: "items/a.jpg"},
		},
		{
			name: "category alone satisfies text requirement",
			item: &NormalizedItem{ItemID: "x1", Category: "electronics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(tt.item)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateItem() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateItem() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidItem) {
				t.Errorf("ValidateItem() error %v does not wrap ErrInvalidItem", err)
			}
		})
	}
}

func TestValidateItem_MissingItemIDNamesField(t *testing.T) {
	err := ValidateItem(&NormalizedItem{Title: "lost wallet"})
	if err == nil || !strings.Contains(err.Error(), "item_id") {
		t.Errorf("ValidateItem() error %v should mention item_id", err)
	}
}

func TestIsValidObjectKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"plain key", "items/a.jpg", true},
		{"empty key", "", false},
		{"backslash", `items\a.jpg`, false},
		{"nul byte", "items/a\x00.jpg", false},
		{"tab", "items/a\t.jpg", false},
		{"carriage return", "items/a\r.jpg", false},
		{"exactly at limit", strings.Repeat("k", 1024), true},
		{"over limit", strings.Repeat("k", 1025), false},
		{"multibyte length counted in bytes", strings.Repeat("ż", 600), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidObjectKey(tt.key); got != tt.want {
				t.Errorf("IsValidObjectKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
