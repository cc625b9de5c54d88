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


// Package storage defines the object-store contract consumed by the pipeline.
//
// The pipeline only ever reads: given a canonical object key it needs the
// object's bytes, or a definite "not there" / "too large" answer. Those
// non-transport outcomes are modeled as FetchResult variants rather than
// errors, so callers match on them exhaustively instead of fishing through
// error chains; the error return is reserved for transport faults.
//
// Backends: storage/minio for MinIO/S3, storage/memory for tests.
package storage
