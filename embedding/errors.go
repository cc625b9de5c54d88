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


package embedding

import "errors"

var (
	// ErrEncoderUnavailable indicates the underlying encoder has not been
	// initialized. This is a configuration fault, not a per-message failure.
	ErrEncoderUnavailable = errors.New("encoder not initialized")

	// ErrDimensionMismatch indicates a vector's length differs from the
	// configured embedding dimension. This is a configuration fault: the
	// deployment points at the wrong model.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidImage indicates the supplied bytes do not decode as an image.
	ErrInvalidImage = errors.New("invalid image data")

	// ErrImageNotSupported indicates the encoder is text-only.
	ErrImageNotSupported = errors.New("encoder does not support image embeddings")

	// ErrInvalidWeight indicates a fusion weight outside [0, 1].
	ErrInvalidWeight = errors.New("text weight must be between 0 and 1")

	// ErrZeroVector indicates the encoder returned an all-zero vector, which
	// cannot be normalized to unit length.
	ErrZeroVector = errors.New("encoder returned a zero vector")
)
