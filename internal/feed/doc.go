// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package feed implements the shelf-composition engine: it turns a pool of
// posts with engagement statistics and taxonomy labels into several
// independently ranked discovery shelves and assembles them into one
// response.
//
// The pipeline for a single shelf is
//
//	retrieve -> filter -> score -> explore-split -> [format-balance] -> diversity-cap
//
// and the Assembler runs one such pipeline per shelf concurrently, then
// deduplicates candidate identifiers across shelves and computes
// response-level capability flags.
//
// The package is deliberately free of transport and storage concerns: the
// candidate store, personalization signal provider and label resolver are
// consumed through small interfaces so the engine stays a pure,
// deterministic ranking function. A failed or empty shelf is omitted from
// the response; it never fails the whole request.
package feed
