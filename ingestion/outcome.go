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


package ingestion

import (
	"errors"

	"github.com/poiesic/lostvec/embedding"
)

// Outcome classifies the result of processing one delivery and drives
// acknowledgment. It is never persisted.
type Outcome int

const (
	// OutcomeSuccess: record published, delivery acknowledged.
	OutcomeSuccess Outcome = iota + 1

	// OutcomeMalformed: the bytes will not parse differently on redelivery.
	// Rejected without requeue.
	OutcomeMalformed

	// OutcomeInvalid: required fields are missing or broken; the producer
	// must fix and resend. Rejected without requeue.
	OutcomeInvalid

	// OutcomeRetryable: a transient fault (publish transport error or an
	// unclassified failure). Requeued for redelivery.
	OutcomeRetryable

	// OutcomeFatal: a configuration fault (wrong dimension, uninitialized
	// encoder). The delivery is requeued for a healthy instance and the
	// worker stops rather than mis-publish.
	OutcomeFatal
)

// String returns the outcome name for log output.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRetryable:
		return "retryable"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// classify maps an error from the embedding or publish stages to an outcome.
// Configuration faults are fatal; everything unclassified defaults to
// retryable, preferring redelivery over silent data loss.
func classify(err error) Outcome {
	switch {
	case errors.Is(err, embedding.ErrEncoderUnavailable),
		errors.Is(err, embedding.ErrDimensionMismatch),
		errors.Is(err, embedding.ErrInvalidWeight):
		return OutcomeFatal
	default:
		return OutcomeRetryable
	}
}
