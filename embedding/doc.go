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


// Package embedding wraps an external text/image encoder behind strict
// numeric invariants.
//
// The Engine L2-normalizes every vector at the boundary, immediately after
// each raw encode call. That single discipline is what makes the rest of the
// pipeline well-defined: fusion becomes a weighted average in a shared metric
// space, and similarity becomes a plain dot product. Any encoder can be
// swapped in as long as it returns finite real vectors of a fixed dimension.
//
// # Implementation Packages
//
//   - embedding/clip: HTTP client for a CLIP sidecar (text and image share
//     one embedding space, so multimodal fusion is meaningful)
//   - embedding/openai: text-only encoder over OpenAI-compatible APIs, for
//     deployments without an image model
//   - embedding/mock: deterministic test doubles
//
// Dimension mismatches surface as ErrDimensionMismatch, a configuration
// fault: the deployment is wired to the wrong model, and no per-message retry
// can fix that.
package embedding
