// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package models defines the wire-level record shapes exchanged with the
// external collaborators (candidate-retrieval store, taxonomy service,
// personalization-signal service). These are loosely-typed boundary types;
// the feed engine only ever sees the validated Candidate mapping.
package models
