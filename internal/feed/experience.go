// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

// Catalog maps experience identifiers to predefined shelf specifications,
// resolved once per request. Keeping this a closed lookup (instead of
// free-form experiment parameters) makes the shelf set auditable.
type Catalog struct {
	shelves []ShelfSpec
}

// NewCatalog creates a catalog from an explicit shelf list.
func NewCatalog(shelves []ShelfSpec) *Catalog {
	return &Catalog{shelves: shelves}
}

// DefaultCatalog returns the production shelf set for the default
// experience, in fixed assembly order. Dedup processes shelves in this
// order, so earlier shelves claim contested items first.
func DefaultCatalog(cfg *Config) *Catalog {
	return NewCatalog([]ShelfSpec{
		{
			Key:    "trending-now",
			Title:  "Trending now",
			Filter: CandidateFilter{WindowDays: 7, MinInteractions: 10, OptInOnly: true, SortHint: "interactions"},
			Weights: TrendingWeights(),
			Caps: DiversityCaps{MaxPerCreator: 2, MaxPerContext: 3},
			ExplorationRatio: 0.2,
			BalanceFormats:   true,
			MaxItems:         cfg.DefaultMaxItems,
			CacheKey:         "pool:trending:7d",
		},
		{
			Key:    "rising-72h",
			Title:  "Rising in the last 72 hours",
			Filter: CandidateFilter{WindowDays: 3, MinInteractions: 5, OptInOnly: true, SortHint: "recent"},
			Weights: RisingWeights(),
			Caps: DiversityCaps{MaxPerCreator: 2},
			ExplorationRatio: 0.3,
			MaxItems:         cfg.DefaultMaxItems,
			CacheKey:         "pool:rising:72h",
		},
		{
			Key:    "top-saved",
			Title:  "Most saved",
			Filter: CandidateFilter{WindowDays: 30, MinInteractions: 10, OptInOnly: true, SortHint: "saved"},
			Weights: TopSavedWeights(),
			Caps: DiversityCaps{MaxPerCreator: 2, MaxPerProposal: 3},
			ExplorationRatio: 0.1,
			MaxItems:         cfg.DefaultMaxItems,
			CacheKey:         "pool:top-saved:30d",
		},
		{
			Key:    "for-you",
			Title:  "Suggested for you",
			Filter: CandidateFilter{WindowDays: 14, MinInteractions: 5, OptInOnly: true},
			Weights: PersonalizedWeights(),
			Caps: DiversityCaps{MaxPerCreator: 2, MaxPerContext: 2},
			ExplorationRatio: 0.25,
			// Duplicates allowed so the personal shelf survives dedup
			// even when earlier shelves claimed its best items.
			AllowDuplicates: true,
			Personalized:    true,
			MaxItems:        cfg.DefaultMaxItems,
			CacheKey:        "pool:for-you:14d",
		},
		{
			Key:    "reels-showcase",
			Title:  "Reels to watch",
			Filter: CandidateFilter{WindowDays: 7, MediaTypes: []string{FormatReel}, OptInOnly: true},
			Weights: ShowcaseWeights(),
			Caps: DiversityCaps{MaxPerCreator: 2},
			ExplorationRatio: 0.2,
			AllowDuplicates:  true,
			MaxItems:         10,
			CacheKey:         "pool:reels:7d",
		},
	})
}

// Resolve returns the shelf specs to build for a request, in assembly
// order. An unknown shelf key resolves to an empty list, not an error.
// When a format filter is active, filters are narrowed and weight profiles
// reweighted; cache keys get a format suffix since the pool is no longer
// the unfiltered one (still user-independent, so still cacheable).
func (c *Catalog) Resolve(req *Request) []ShelfSpec {
	var specs []ShelfSpec
	switch req.Experience {
	case ExperienceSingleShelf:
		for i := range c.shelves {
			if c.shelves[i].Key == req.ShelfKey {
				specs = []ShelfSpec{c.shelves[i]}
				break
			}
		}
	default:
		specs = make([]ShelfSpec, len(c.shelves))
		copy(specs, c.shelves)
	}

	if req.Format == "" {
		return specs
	}

	format := CanonicalFormat(req.Format)
	if format == "" {
		format = req.Format
	}
	for i := range specs {
		specs[i].Filter.MediaTypes = []string{format}
		specs[i].Weights = ReweightForFormat(specs[i].Weights, format)
		if specs[i].CacheKey != "" {
			specs[i].CacheKey += ":fmt:" + format
		}
	}
	return specs
}

// Shelves returns the full configured shelf list.
func (c *Catalog) Shelves() []ShelfSpec {
	out := make([]ShelfSpec, len(c.shelves))
	copy(out, c.shelves)
	return out
}
