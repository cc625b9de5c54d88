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

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates a NormalizedItem failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrMissingItemID indicates the required item_id field is empty.
	ErrMissingItemID = errors.New("missing required field: item_id")

	// ErrNoTextContent indicates title, description and category are all empty.
	ErrNoTextContent = errors.New("item must contain at least one text field (title, description, or category)")

	// ErrInvalidImageKey indicates the image key contains forbidden characters
	// or exceeds the storage backend's key-length limit.
	ErrInvalidImageKey = errors.New("invalid image_key format")
)
