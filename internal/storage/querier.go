package storage

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=querier.go -destination=mocks/mock_querier.go -package=mocks

// VisitQuerier defines the interface for visit-log database operations
type VisitQuerier interface {
	AddOrUpdateVisit(ctx context.Context, url string, title sql.NullString, visitCount int64) error
	GetVisit(ctx context.Context, url string) (Visit, error)
	GetRecentVisits(ctx context.Context, limit int64) ([]Visit, error)
	SearchVisits(ctx context.Context, column1 sql.NullString, column2 sql.NullString, limit int64) ([]Visit, error)
	DeleteAllVisits(ctx context.Context) error
}

// ZoomQuerier defines the interface for zoom-related database operations
type ZoomQuerier interface {
	GetZoomLevel(ctx context.Context, host string) (float64, error)
	SetZoomLevel(ctx context.Context, host string, factor float64) error
	DeleteZoomLevel(ctx context.Context, host string) error
	DeleteAllZoomLevels(ctx context.Context) error
	ListZoomLevels(ctx context.Context) ([]ZoomLevel, error)
}

// Querier combines all database operation interfaces
type Querier interface {
	VisitQuerier
	ZoomQuerier
}

// Ensure that *Queries implements Querier
var _ Querier = (*Queries)(nil)
