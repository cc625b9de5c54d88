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


package core

import (
	"fmt"
	"strings"
)

// maxObjectKeyBytes is the S3/MinIO object key length limit in UTF-8 bytes.
const maxObjectKeyBytes = 1024

// forbiddenKeyChars are control characters that must not appear in an object
// key. Backslashes are rewritten to forward slashes during canonicalization,
// but a key that still carries one did not pass through the normalizer.
const forbiddenKeyChars = "\\\x00\n\r\t"

// ValidateItem validates a NormalizedItem according to domain rules.
//
// Validation rules:
//   - ItemID must not be empty
//   - At least one of Title, Description, Category must be non-empty
//   - ImageKey, when present, must be a valid object-storage key
//
// A validation failure is never recoverable by redelivery; the producer must
// fix the message and resend.
func ValidateItem(item *NormalizedItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.ItemID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrMissingItemID)
	}

	if item.Title == "" && item.Description == "" && item.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrNoTextContent)
	}

	if item.ImageKey != "" && !IsValidObjectKey(item.ImageKey) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidItem, ErrInvalidImageKey, item.ImageKey)
	}

	return nil
}

// IsValidObjectKey checks whether a key can address an object in the storage
// backend: no control characters and at most 1024 UTF-8 bytes.
func IsValidObjectKey(key string) bool {
	if key == "" {
		return false
	}
	if strings.ContainsAny(key, forbiddenKeyChars) {
		return false
	}
	return len(key) <= maxObjectKeyBytes
}
