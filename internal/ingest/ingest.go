// Package ingest defines the contract shared by the data-source adapters.
// Each adapter obtains raw candidates, normalizes them, writes them through the
// store's idempotent operations and reports the rows that were newly created.
package ingest

import (
	"context"
	"errors"
	"fmt"
)

// Source names an ingestion adapter. The values double as the live event type.
type Source string

const (
	SourceInsider  Source = "insider"
	SourceCongress Source = "congress"
	Source13F      Source = "13f"
)

// ErrSourceUnavailable marks a whole-source failure (network, non-2xx, parse).
var ErrSourceUnavailable = errors.New("source unavailable")

// Unavailable wraps err as a whole-source failure of src.
func Unavailable(src Source, err error) error {
	return fmt.Errorf("%s: %w: %w", src, ErrSourceUnavailable, err)
}

// Result summarizes one fetch cycle.
type Result struct {
	Source  Source
	Fetched int // raw candidates seen
	Dropped int // candidates that failed normalization or could not be written
	Created int // rows newly written
	Records any // the newly created rows
}

// Adapter is one data source.
type Adapter interface {
	Source() Source
	// Fetch runs one cycle. A non-nil error means the source as a whole was
	// unavailable; Result still carries whatever was collected before that.
	Fetch(ctx context.Context) (Result, error)
}
