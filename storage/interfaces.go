package storage

import "context"

// FetchStatus tags the outcome of an object fetch.
type FetchStatus int

const (
	// FetchOK means the object was retrieved and Data holds its bytes.
	FetchOK FetchStatus = iota + 1
	// FetchNotFound means no object exists under the key.
	FetchNotFound
	// FetchTooLarge means the object exceeds the configured size cap.
	FetchTooLarge
)

// String returns a human-readable status name for log output.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchNotFound:
		return "not found"
	case FetchTooLarge:
		return "too large"
	default:
		return "unknown"
	}
}

// FetchResult is the outcome of fetching an object.
// Data is populated only when Status is FetchOK.
type FetchResult struct {
	Status FetchStatus
	Data   []byte
}

// Fetcher retrieves stored objects by canonical key.
// Missing and oversized objects are reported through FetchResult, not the
// error return; an error means the backend itself could not be reached.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (FetchResult, error)
}
