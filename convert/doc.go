// Package convert normalizes inbound lost-item messages into canonical form.
//
// The Converter turns an arbitrary key/value payload into a core.NormalizedItem:
// text fields are whitespace-collapsed, contact details are merged, and the
// image reference is resolved to a single canonical object-storage key. Both
// the legacy image_url format and the native image_key format are supported;
// when both appear, image_key always wins.
//
// Normalize is best-effort and never fails. Malformed references degrade to
// a text-only item and are recorded in the per-instance Stats.
package convert
