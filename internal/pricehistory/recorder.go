// Package pricehistory records one price observation per provider source per day
// and answers read-side history and statistics queries.
package pricehistory

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
	"github.com/feral-file/ff-catalog-ingest/internal/store"
	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
)

// RecordInput is one price observation for a provider source
type RecordInput struct {
	ProviderSourceID uint64
	Price            int
	SalePrice        *int
	DiscountPercent  *int
}

// BatchResult tallies a batch write. A failed chunk counts all of its records as failed.
type BatchResult struct {
	Success int
	Failed  int
}

// PriceStats summarizes the recorded history of a provider source
type PriceStats struct {
	// LowestPrice is the lowest sale price ever seen, or the lowest list price when there was never a sale
	LowestPrice        int
	HighestPrice       int
	AveragePrice       int
	MaxDiscountPercent int
	RecordCount        int
	FirstRecordedOn    time.Time
	LastRecordedOn     time.Time
}

// Config holds the recorder settings
type Config struct {
	// ChunkSize is the number of records written per transaction in BatchRecord
	ChunkSize int
	// Location decides which calendar day an observation belongs to
	Location *time.Location
}

// Recorder defines the price history operations
//
//go:generate mockgen -source=recorder.go -destination=../mocks/price_recorder.go -package=mocks -mock_names=Recorder=MockPriceRecorder
type Recorder interface {
	// Record upserts today's observation for a provider source. It never returns an error;
	// false means the observation was not stored.
	Record(ctx context.Context, input RecordInput) bool
	// BatchRecord writes observations in sequential fixed-size chunks
	BatchRecord(ctx context.Context, inputs []RecordInput) BatchResult
	// GetPriceHistory returns the observations of the last days days, oldest first. days <= 0 returns everything.
	GetPriceHistory(ctx context.Context, providerSourceID uint64, days int) ([]schema.PriceHistory, error)
	// GetPriceStats summarizes the history of a provider source. It returns nil when nothing was recorded.
	GetPriceStats(ctx context.Context, providerSourceID uint64) (*PriceStats, error)
}

type recorder struct {
	store     store.Store
	clock     adapter.Clock
	chunkSize int
	location  *time.Location
}

// NewRecorder creates a new price history recorder
func NewRecorder(st store.Store, clock adapter.Clock, cfg Config) Recorder {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = domain.DEFAULT_PRICE_CHUNK_SIZE
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	return &recorder{
		store:     st,
		clock:     clock,
		chunkSize: chunkSize,
		location:  location,
	}
}

// LoadLocation resolves a time zone name, falling back to a fixed JST offset when the
// zone database is unavailable on the host
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = domain.DEFAULT_PRICE_TIMEZONE
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if name == domain.DEFAULT_PRICE_TIMEZONE {
		return time.FixedZone("JST", 9*60*60), nil
	}
	return nil, fmt.Errorf("failed to load time zone %q: %w", name, err)
}

// Record upserts today's observation for a provider source
func (r *recorder) Record(ctx context.Context, input RecordInput) bool {
	if err := validateInput(input); err != nil {
		logger.WarnCtx(ctx, "Skipping price observation", zap.Error(err), zap.Uint64("providerSourceID", input.ProviderSourceID))
		return false
	}

	if err := r.store.UpsertPriceHistory(ctx, r.toStoreInput(input)); err != nil {
		logger.WarnCtx(ctx, "Failed to record price", zap.Error(err), zap.Uint64("providerSourceID", input.ProviderSourceID))
		return false
	}

	return true
}

// BatchRecord writes observations in sequential chunks of the configured size.
// Each chunk is one transaction, so a failing chunk writes nothing and all of its records count as failed.
func (r *recorder) BatchRecord(ctx context.Context, inputs []RecordInput) BatchResult {
	var result BatchResult

	for start := 0; start < len(inputs); start += r.chunkSize {
		end := min(start+r.chunkSize, len(inputs))
		chunk := inputs[start:end]

		storeInputs := make([]store.UpsertPriceHistoryInput, 0, len(chunk))
		var invalid error
		for _, input := range chunk {
			if err := validateInput(input); err != nil {
				invalid = err
				break
			}
			storeInputs = append(storeInputs, r.toStoreInput(input))
		}

		if invalid != nil {
			logger.WarnCtx(ctx, "Skipping price chunk with invalid record",
				zap.Error(invalid),
				zap.Int("chunkStart", start),
				zap.Int("chunkSize", len(chunk)))
			result.Failed += len(chunk)
			continue
		}

		if err := r.store.UpsertPriceHistories(ctx, storeInputs); err != nil {
			logger.WarnCtx(ctx, "Failed to record price chunk",
				zap.Error(err),
				zap.Int("chunkStart", start),
				zap.Int("chunkSize", len(chunk)))
			result.Failed += len(chunk)
			continue
		}

		result.Success += len(chunk)
	}

	return result
}

// GetPriceHistory returns the observations of the last days days, oldest first
func (r *recorder) GetPriceHistory(ctx context.Context, providerSourceID uint64, days int) ([]schema.PriceHistory, error) {
	var since time.Time
	if days > 0 {
		since = r.today().AddDate(0, 0, -(days - 1))
	}

	return r.store.GetPriceHistory(ctx, providerSourceID, since)
}

// GetPriceStats summarizes the history of a provider source
func (r *recorder) GetPriceStats(ctx context.Context, providerSourceID uint64) (*PriceStats, error) {
	aggregate, err := r.store.GetPriceAggregate(ctx, providerSourceID)
	if err != nil {
		return nil, err
	}

	return statsFromAggregate(aggregate), nil
}

// statsFromAggregate converts store aggregates into stats; nil means no data
func statsFromAggregate(aggregate *store.PriceAggregate) *PriceStats {
	if aggregate == nil || aggregate.RecordCount == 0 {
		return nil
	}

	stats := &PriceStats{
		RecordCount:        int(aggregate.RecordCount),
		LowestPrice:        derefInt(aggregate.MinPrice),
		HighestPrice:       derefInt(aggregate.MaxPrice),
		MaxDiscountPercent: derefInt(aggregate.MaxDiscountPercent),
	}
	if aggregate.MinSalePrice != nil {
		stats.LowestPrice = *aggregate.MinSalePrice
	}
	if aggregate.AvgPrice != nil {
		stats.AveragePrice = int(math.Round(*aggregate.AvgPrice))
	}
	if aggregate.FirstRecordedOn != nil {
		stats.FirstRecordedOn = *aggregate.FirstRecordedOn
	}
	if aggregate.LastRecordedOn != nil {
		stats.LastRecordedOn = *aggregate.LastRecordedOn
	}

	return stats
}

func (r *recorder) toStoreInput(input RecordInput) store.UpsertPriceHistoryInput {
	return store.UpsertPriceHistoryInput{
		ProviderSourceID: input.ProviderSourceID,
		RecordedOn:       r.today(),
		Price:            input.Price,
		SalePrice:        input.SalePrice,
		DiscountPercent:  input.DiscountPercent,
	}
}

// today returns the current calendar day in the recorder's location, as midnight UTC
func (r *recorder) today() time.Time {
	return store.DateOf(r.clock.Now().In(r.location))
}

func validateInput(input RecordInput) error {
	if input.ProviderSourceID == 0 {
		return fmt.Errorf("missing provider source id")
	}
	if input.Price <= 0 {
		return fmt.Errorf("non-positive price %d", input.Price)
	}
	if input.SalePrice != nil && *input.SalePrice <= 0 {
		return fmt.Errorf("non-positive sale price %d", *input.SalePrice)
	}
	return nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
