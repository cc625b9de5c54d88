// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package convert

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/poiesic/lostvec/core"
)

const (
	// legacyKeyPrefix is the namespace prefix for keys synthesized from
	// legacy URLs that do not point at the object store itself.
	legacyKeyPrefix = "items/"

	// storageHostMarker identifies object-store hosts in legacy URLs.
	storageHostMarker = "minio"

	// storageDefaultPort is the object store's default service port.
	storageDefaultPort = "9000"
)

var repeatedSlashes = regexp.MustCompile(`/+`)

// Stats holds per-instance normalization counters.
// Counters are updated in the worker's single-threaded context; no locking.
type Stats struct {
	Total     int // messages normalized
	KeyFormat int // image resolved from a native image_key
	URLFormat int // image resolved by converting a legacy image_url
	NoImage   int // no image reference present
	Errors    int // image reference present but unconvertible
}

// Converter normalizes raw messages into canonical items.
// It is owned by a single worker instance and is not safe for concurrent use.
type Converter struct {
	logger *slog.Logger
	stats  Stats
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewConverter creates a converter with zeroed stats.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		logger: slog.Default().With("component", "converter"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize turns a raw message into a canonical NormalizedItem.
// It is a pure function of the payload apart from counter updates: missing
// fields coerce to empty strings, whitespace runs collapse to single spaces,
// and the image reference resolves to at most one canonical object key.
// Normalize never fails; unresolvable image references degrade to text-only.
func (c *Converter) Normalize(raw core.RawMessage) *core.NormalizedItem {
	c.stats.Total++

	item := &core.NormalizedItem{
		ItemID:      CollapseWhitespace(stringField(raw, "item_id")),
		Title:       CollapseWhitespace(stringField(raw, "text", "title")),
		Description: CollapseWhitespace(stringField(raw, "description")),
		Category:    CollapseWhitespace(stringField(raw, "category")),
		Location:    CollapseWhitespace(stringField(raw, "location")),
		DateLost:    CollapseWhitespace(stringField(raw, "date_lost")),
		ContactInfo: CollapseWhitespace(stringField(raw, "contact_info")),
		ImageKey:    c.resolveImageKey(raw),
	}

	// Merge separate contact fields if contact_info was not supplied.
	if item.ContactInfo == "" {
		var parts []string
		if email := CollapseWhitespace(stringField(raw, "contact_email")); email != "" {
			parts = append(parts, email)
		}
		if phone := CollapseWhitespace(stringField(raw, "contact_phone")); phone != "" {
			parts = append(parts, phone)
		}
		item.ContactInfo = strings.Join(parts, ", ")
	}

	c.logger.Debug("normalized message", "item_id", item.ItemID, "image_key", item.ImageKey)
	return item
}

// Stats returns a copy of the current counters.
func (c *Converter) Stats() Stats {
	return c.stats
}

// ResetStats zeroes all counters.
func (c *Converter) ResetStats() {
	c.stats = Stats{}
}

// resolveImageKey extracts the image reference with strict priority:
// native image_key first, then best-effort conversion of a legacy image_url,
// then none.
func (c *Converter) resolveImageKey(raw core.RawMessage) string {
	if key := strings.TrimSpace(stringField(raw, "image_key")); key != "" {
		c.stats.KeyFormat++
		return CanonicalKey(key)
	}

	if rawURL := strings.TrimSpace(stringField(raw, "image_url")); rawURL != "" {
		if key := urlToObjectKey(rawURL); key != "" {
			c.stats.URLFormat++
			c.logger.Warn("converted legacy image_url to image_key; update the producer to send image_key",
				"url", rawURL, "key", key)
			return key
		}
		c.stats.Errors++
		c.logger.Error("cannot convert image_url to object key; image will be skipped", "url", rawURL)
		return ""
	}

	c.stats.NoImage++
	return ""
}

// urlToObjectKey attempts a best-effort conversion of a legacy URL to an
// object key. Returns "" when no conversion is possible.
func urlToObjectKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	path := strings.Trim(u.Path, "/")

	// URLs that address the object store directly carry the bucket as the
	// first path segment, e.g. http://minio:9000/lost-items-images/items/a.jpg.
	if strings.Contains(strings.ToLower(u.Host), storageHostMarker) || u.Port() == storageDefaultPort {
		if _, key, found := strings.Cut(path, "/"); found {
			return CanonicalKey(key)
		}
	}

	// Otherwise synthesize a key from the URL's filename,
	// e.g. https://example.com/images/backpack.jpg -> items/backpack.jpg.
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	if path != "" && strings.Contains(path, ".") {
		return CanonicalKey(legacyKeyPrefix + path)
	}

	return ""
}

// CanonicalKey normalizes an object key: trims whitespace, strips leading and
// trailing slashes, rewrites backslashes to forward slashes, and collapses
// repeated slashes. CanonicalKey is idempotent.
func CanonicalKey(key string) string {
	key = strings.Trim(strings.TrimSpace(key), "/")
	key = strings.ReplaceAll(key, `\`, "/")
	key = repeatedSlashes.ReplaceAllString(key, "/")
	return strings.Trim(key, "/")
}

// CollapseWhitespace trims a string and collapses internal whitespace runs to
// single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stringField returns the first present, non-nil field among keys, coerced to
// a string. Numeric identifiers sent by older producers are rendered with %v.
func stringField(raw core.RawMessage, keys ...string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
