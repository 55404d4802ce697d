// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"errors"
	"fmt"
)

// Shelf-boundary error classification. Both kinds are caught by the
// assembler, logged with shelf id and timing, and cause the shelf to be
// omitted from the response — they never propagate to fail the request.
var (
	// ErrRetrievalFailure marks a candidate-store error or timeout for
	// one shelf.
	ErrRetrievalFailure = errors.New("candidate retrieval failed")

	// ErrTransformFailure marks an unexpected error inside the
	// scoring/diversity/balancing pipeline for one shelf.
	ErrTransformFailure = errors.New("shelf transform failed")
)

func retrievalFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrRetrievalFailure, err)
}

func transformFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrTransformFailure, err)
}
