package storage_test

import (
	"database/sql"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/skiff-browser/skiff/internal/storage"
	"github.com/skiff-browser/skiff/internal/storage/mocks"
)

func TestRecorderPersistsOnClose(t *testing.T) {
	ctx := storageTestCtx()
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQuerier(ctrl)

	q.EXPECT().
		AddOrUpdateVisit(gomock.Any(), "https://example.com/page", sql.NullString{String: "Example", Valid: true}, int64(1)).
		Return(nil)

	rec := storage.NewRecorder(ctx, q)
	rec.Record(ctx, "https://Example.COM/page/", "Example")
	rec.Close()
}

func TestRecorderDeduplicatesBursts(t *testing.T) {
	ctx := storageTestCtx()
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQuerier(ctrl)

	// Fragment and trailing slash collapse onto one canonical URL, and
	// repeats inside the dedup window are dropped before queueing.
	q.EXPECT().
		AddOrUpdateVisit(gomock.Any(), "https://example.com/a", gomock.Any(), int64(1)).
		Return(nil).
		Times(1)

	rec := storage.NewRecorder(ctx, q)
	rec.Record(ctx, "https://example.com/a", "")
	rec.Record(ctx, "https://example.com/a#section", "")
	rec.Record(ctx, "https://example.com/a/", "")
	rec.Close()
}

func TestRecorderStripsTrackingParams(t *testing.T) {
	ctx := storageTestCtx()
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQuerier(ctrl)

	q.EXPECT().
		AddOrUpdateVisit(gomock.Any(), "https://example.com/x?id=7", gomock.Any(), int64(1)).
		Return(nil)

	rec := storage.NewRecorder(ctx, q)
	rec.Record(ctx, "https://example.com/x?utm_source=news&utm_campaign=z&fbclid=abc&id=7", "")
	rec.Close()
}

func TestRecorderIgnoresBlankURLs(t *testing.T) {
	ctx := storageTestCtx()
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQuerier(ctrl)

	rec := storage.NewRecorder(ctx, q)
	rec.Record(ctx, "", "ignored")
	rec.Record(ctx, "   ", "ignored")
	rec.Close()
}

func TestRecorderRecordsDistinctPages(t *testing.T) {
	ctx := storageTestCtx()
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQuerier(ctrl)

	q.EXPECT().
		AddOrUpdateVisit(gomock.Any(), "https://a.example", gomock.Any(), int64(1)).
		Return(nil)
	q.EXPECT().
		AddOrUpdateVisit(gomock.Any(), "https://b.example", gomock.Any(), int64(1)).
		Return(nil)

	rec := storage.NewRecorder(ctx, q)
	rec.Record(ctx, "https://a.example", "A")
	rec.Record(ctx, "https://b.example", "B")
	rec.Close()
}
