package storage

import (
	"context"
	"database/sql"
	"errors"
)

// Zooms adapts the zoom query layer to the lookup shape the browser
// session wants: a missing host is an absent value, not an error.
type Zooms struct {
	queries ZoomQuerier
}

// NewZooms wraps queries in a Zooms adapter.
func NewZooms(queries ZoomQuerier) *Zooms {
	return &Zooms{queries: queries}
}

// ZoomLevel returns the saved zoom factor for host, reporting whether
// one was stored.
func (z *Zooms) ZoomLevel(ctx context.Context, host string) (float64, bool, error) {
	factor, err := z.queries.GetZoomLevel(ctx, host)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return factor, true, nil
}

// SetZoomLevel saves the zoom factor for host.
func (z *Zooms) SetZoomLevel(ctx context.Context, host string, factor float64) error {
	return z.queries.SetZoomLevel(ctx, host, factor)
}
