package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
)

// Store defines the interface for catalog database operations.
// Every write is keyed on a unique constraint and is safe to repeat.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Ping checks that the database is reachable
	Ping(ctx context.Context) error

	// UpsertProduct inserts a product keyed by normalized id, or refreshes the mutable fields of the
	// existing row. The returned bool is true only for the call that created the row.
	UpsertProduct(ctx context.Context, input UpsertProductInput) (*schema.Product, bool, error)
	// GetProductByNormalizedID retrieves a product by its normalized id, nil when absent
	GetProductByNormalizedID(ctx context.Context, normalizedID string) (*schema.Product, error)

	// UpsertProviderSource inserts or updates the (product, provider) link with the latest observation
	UpsertProviderSource(ctx context.Context, input UpsertProviderSourceInput) (*schema.ProviderSource, error)
	// GetProviderSources retrieves all provider links of a product
	GetProviderSources(ctx context.Context, productID uint64) ([]schema.ProviderSource, error)

	// GetOrCreatePerformer returns the performer with exactly this name, creating it when absent
	GetOrCreatePerformer(ctx context.Context, name string) (*schema.Performer, error)
	// LinkProductPerformer associates a performer with a product. Returns false when the pair already existed.
	LinkProductPerformer(ctx context.Context, productID, performerID uint64) (bool, error)
	// GetProductPerformers retrieves the performers associated with a product, ordered by name
	GetProductPerformers(ctx context.Context, productID uint64) ([]schema.Performer, error)

	// UpsertPriceHistory records one observation, overwriting an earlier one for the same source and day
	UpsertPriceHistory(ctx context.Context, input UpsertPriceHistoryInput) error
	// UpsertPriceHistories records several observations in a single transaction
	UpsertPriceHistories(ctx context.Context, inputs []UpsertPriceHistoryInput) error
	// GetPriceHistory retrieves the observations of a source recorded on or after since, oldest first
	GetPriceHistory(ctx context.Context, providerSourceID uint64, since time.Time) ([]schema.PriceHistory, error)
	// GetPriceAggregate computes aggregate price figures for a source
	GetPriceAggregate(ctx context.Context, providerSourceID uint64) (*PriceAggregate, error)
}

// UpsertProductInput represents the fields of an accepted extraction that land on the product row
type UpsertProductInput struct {
	NormalizedID    string
	Title           string
	TitleVariants   map[string]string
	CodeVariations  []string
	Description     string
	ThumbnailURL    string
	ReleaseDate     *time.Time
	DurationMinutes *int
}

// UpsertProviderSourceInput represents the latest observation of a product on one provider
type UpsertProviderSourceInput struct {
	ProductID       uint64
	ProviderName    string
	ProviderCode    string
	AffiliateURL    string
	Price           int
	SalePrice       *int
	DiscountPercent *int
	SeenAt          time.Time
}

// UpsertPriceHistoryInput represents one daily price observation
type UpsertPriceHistoryInput struct {
	ProviderSourceID uint64
	RecordedOn       time.Time
	Price            int
	SalePrice        *int
	DiscountPercent  *int
}

// PriceAggregate holds aggregate price figures for one provider source.
// Pointer fields are nil when no row contributes a value.
type PriceAggregate struct {
	RecordCount        int64
	MinPrice           *int
	MaxPrice           *int
	AvgPrice           *float64
	MinSalePrice       *int
	MaxDiscountPercent *int
	FirstRecordedOn    *time.Time
	LastRecordedOn     *time.Time
}
