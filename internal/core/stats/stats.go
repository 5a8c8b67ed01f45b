// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package stats serves the home page counters.
//
// Catalog counts are read live from PostgreSQL. The visit counter is kept
// per visitor in Redis and reports how many earlier visits there were.
package stats

import "context"

// Summary is the home page payload.
type Summary struct {
	NumBooks              int   `json:"num_books"`
	NumInstances          int   `json:"num_instances"`
	NumInstancesAvailable int   `json:"num_instances_available"`
	NumAuthors            int   `json:"num_authors"`
	NumGenres             int   `json:"num_genres"`
	NumVisits             int64 `json:"num_visits"`
}

// Repository reads the catalog counts.
type Repository interface {
	Counts(ctx context.Context) (*Summary, error)
}

// VisitCounter records a visit and returns the number of visits before it.
type VisitCounter interface {
	Hit(ctx context.Context, visitor string) (int64, error)
}
