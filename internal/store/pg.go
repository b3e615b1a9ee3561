package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-catalog-ingest/internal/logger"
	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance.
// Any gorm dialect with ON CONFLICT support works; tests also run it on SQLite.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Ping checks that the database is reachable
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		// a transaction-bound handle has no *sql.DB, so probe with a query instead
		return s.db.WithContext(ctx).Exec("SELECT 1").Error
	}
	return sqlDB.PingContext(ctx)
}

// UpsertProduct inserts a product keyed by normalized id, or refreshes the existing row.
//
// The insert is ON CONFLICT DO NOTHING on the unique normalized_id, so concurrent callers for the
// same id never create two rows; exactly one of them observes an affected row and reports isNew.
func (s *pgStore) UpsertProduct(ctx context.Context, input UpsertProductInput) (*schema.Product, bool, error) {
	if input.NormalizedID == "" {
		return nil, false, fmt.Errorf("normalized id is required")
	}

	titleVariants, err := marshalJSON(input.TitleVariants)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal title variants: %w", err)
	}
	codeVariations, err := marshalJSON(input.CodeVariations)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal code variations: %w", err)
	}

	var product schema.Product
	var isNew bool

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product = schema.Product{
			NormalizedID:    input.NormalizedID,
			Title:           input.Title,
			TitleVariants:   titleVariants,
			CodeVariations:  codeVariations,
			Description:     input.Description,
			ThumbnailURL:    input.ThumbnailURL,
			ReleaseDate:     input.ReleaseDate,
			DurationMinutes: input.DurationMinutes,
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "normalized_id"}},
			DoNothing: true,
		}).Omit(clause.Associations).Create(&product)
		if result.Error != nil {
			return fmt.Errorf("failed to insert product: %w", result.Error)
		}

		if result.RowsAffected > 0 {
			isNew = true
			return nil
		}

		// The row already existed: refresh the mutable fields
		var existing schema.Product
		if err := tx.Where("normalized_id = ?", input.NormalizedID).First(&existing).Error; err != nil {
			return fmt.Errorf("failed to get existing product: %w", err)
		}

		updates := productUpdates(&existing, input)
		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		var refreshed schema.Product
		if err := tx.Where("id = ?", existing.ID).First(&refreshed).Error; err != nil {
			return fmt.Errorf("failed to reload product: %w", err)
		}
		product = refreshed

		return nil
	})

	if err != nil {
		return nil, false, err
	}

	return &product, isNew, nil
}

// productUpdates returns the columns to refresh on an existing product.
// Empty inputs never erase stored values; code variations are merged.
func productUpdates(existing *schema.Product, input UpsertProductInput) map[string]interface{} {
	updates := make(map[string]interface{})

	if input.Title != "" && input.Title != existing.Title {
		updates["title"] = input.Title
	}
	if input.Description != "" && input.Description != existing.Description {
		updates["description"] = input.Description
	}
	if input.ThumbnailURL != "" && input.ThumbnailURL != existing.ThumbnailURL {
		updates["thumbnail_url"] = input.ThumbnailURL
	}
	if input.DurationMinutes != nil {
		updates["duration_minutes"] = *input.DurationMinutes
	}
	if input.ReleaseDate != nil && existing.ReleaseDate == nil {
		updates["release_date"] = *input.ReleaseDate
	}

	if len(input.TitleVariants) > 0 {
		variants := make(map[string]string)
		if len(existing.TitleVariants) > 0 {
			if err := json.Unmarshal(existing.TitleVariants, &variants); err != nil {
				logger.Warn("discarding unreadable title variants", zap.Error(err), zap.Uint64("productID", existing.ID))
			}
		}
		for locale, title := range input.TitleVariants {
			variants[locale] = title
		}
		if raw, err := json.Marshal(variants); err == nil {
			updates["title_variants"] = datatypes.JSON(raw)
		}
	}

	if len(input.CodeVariations) > 0 {
		var codes []string
		if len(existing.CodeVariations) > 0 {
			if err := json.Unmarshal(existing.CodeVariations, &codes); err != nil {
				logger.Warn("discarding unreadable code variations", zap.Error(err), zap.Uint64("productID", existing.ID))
			}
		}
		merged := mergeStrings(codes, input.CodeVariations)
		if len(merged) != len(codes) {
			if raw, err := json.Marshal(merged); err == nil {
				updates["code_variations"] = datatypes.JSON(raw)
			}
		}
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
	}

	return updates
}

// GetProductByNormalizedID retrieves a product by its normalized id, returning nil, nil when absent
func (s *pgStore) GetProductByNormalizedID(ctx context.Context, normalizedID string) (*schema.Product, error) {
	var product schema.Product
	err := s.db.WithContext(ctx).Where("normalized_id = ?", normalizedID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// UpsertProviderSource inserts or updates the (product, provider) link
func (s *pgStore) UpsertProviderSource(ctx context.Context, input UpsertProviderSourceInput) (*schema.ProviderSource, error) {
	seenAt := input.SeenAt
	if seenAt.IsZero() {
		seenAt = time.Now()
	}

	source := schema.ProviderSource{
		ProductID:       input.ProductID,
		ProviderName:    input.ProviderName,
		ProviderCode:    input.ProviderCode,
		AffiliateURL:    input.AffiliateURL,
		Price:           input.Price,
		SalePrice:       input.SalePrice,
		DiscountPercent: input.DiscountPercent,
		LastSeenAt:      seenAt,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "provider_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"provider_code",
				"affiliate_url",
				"price",
				"sale_price",
				"discount_percent",
				"last_seen_at",
				"updated_at",
			}),
		}).
		Omit(clause.Associations).
		Create(&source).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert provider source: %w", err)
	}

	// Read the row back by its key: drivers without RETURNING report a stale id for an updated row
	var stored schema.ProviderSource
	if err := s.db.WithContext(ctx).
		Where("product_id = ? AND provider_name = ?", input.ProductID, input.ProviderName).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to get provider source: %w", err)
	}

	return &stored, nil
}

// GetProviderSources retrieves all provider links of a product
func (s *pgStore) GetProviderSources(ctx context.Context, productID uint64) ([]schema.ProviderSource, error) {
	var sources []schema.ProviderSource
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("provider_name ASC").
		Find(&sources).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get provider sources: %w", err)
	}

	return sources, nil
}

// GetOrCreatePerformer returns the performer with exactly this name, creating it when absent
func (s *pgStore) GetOrCreatePerformer(ctx context.Context, name string) (*schema.Performer, error) {
	if name == "" {
		return nil, fmt.Errorf("performer name is required")
	}

	performer := schema.Performer{Name: name}

	// Use ON CONFLICT DO NOTHING to handle concurrent inserts
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&performer).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create performer: %w", err)
	}

	if performer.ID == 0 {
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&performer).Error; err != nil {
			return nil, fmt.Errorf("failed to get performer: %w", err)
		}
	}

	return &performer, nil
}

// LinkProductPerformer associates a performer with a product
func (s *pgStore) LinkProductPerformer(ctx context.Context, productID, performerID uint64) (bool, error) {
	link := schema.ProductPerformer{
		ProductID:   productID,
		PerformerID: performerID,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&link)
	if result.Error != nil {
		return false, fmt.Errorf("failed to link performer: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetProductPerformers retrieves the performers associated with a product
func (s *pgStore) GetProductPerformers(ctx context.Context, productID uint64) ([]schema.Performer, error) {
	var performers []schema.Performer
	err := s.db.WithContext(ctx).
		Joins("JOIN product_performers ON product_performers.performer_id = performers.id").
		Where("product_performers.product_id = ?", productID).
		Order("performers.name ASC").
		Find(&performers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get product performers: %w", err)
	}

	return performers, nil
}

// UpsertPriceHistory records one observation, overwriting an earlier one for the same source and day
func (s *pgStore) UpsertPriceHistory(ctx context.Context, input UpsertPriceHistoryInput) error {
	return upsertPriceHistory(s.db.WithContext(ctx), input)
}

// UpsertPriceHistories records several observations in a single transaction.
// Either every observation is written or none is.
func (s *pgStore) UpsertPriceHistories(ctx context.Context, inputs []UpsertPriceHistoryInput) error {
	if len(inputs) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, input := range inputs {
			if err := upsertPriceHistory(tx, input); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		}
		return nil
	})
}

func upsertPriceHistory(db *gorm.DB, input UpsertPriceHistoryInput) error {
	entry := schema.PriceHistory{
		ProviderSourceID: input.ProviderSourceID,
		RecordedOn:       DateOf(input.RecordedOn),
		Price:            input.Price,
		SalePrice:        input.SalePrice,
		DiscountPercent:  input.DiscountPercent,
	}

	err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_source_id"}, {Name: "recorded_on"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"price",
				"sale_price",
				"discount_percent",
				"updated_at",
			}),
		}).
		Omit(clause.Associations).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert price history: %w", err)
	}

	return nil
}

// GetPriceHistory retrieves the observations of a source recorded on or after since, oldest first
func (s *pgStore) GetPriceHistory(ctx context.Context, providerSourceID uint64, since time.Time) ([]schema.PriceHistory, error) {
	var entries []schema.PriceHistory
	query := s.db.WithContext(ctx).Where("provider_source_id = ?", providerSourceID)
	if !since.IsZero() {
		query = query.Where("recorded_on >= ?", DateOf(since))
	}

	if err := query.Order("recorded_on ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}

	return entries, nil
}

// GetPriceAggregate computes aggregate price figures for a source
func (s *pgStore) GetPriceAggregate(ctx context.Context, providerSourceID uint64) (*PriceAggregate, error) {
	var row struct {
		RecordCount        int64
		MinPrice           *int
		MaxPrice           *int
		AvgPrice           *float64
		MinSalePrice       *int
		MaxDiscountPercent *int
	}

	err := s.db.WithContext(ctx).
		Model(&schema.PriceHistory{}).
		Select(`COUNT(*) AS record_count,
			MIN(price) AS min_price,
			MAX(price) AS max_price,
			CAST(AVG(price) AS DOUBLE PRECISION) AS avg_price,
			MIN(sale_price) AS min_sale_price,
			MAX(discount_percent) AS max_discount_percent`).
		Where("provider_source_id = ?", providerSourceID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate price history: %w", err)
	}

	aggregate := &PriceAggregate{
		RecordCount:        row.RecordCount,
		MinPrice:           row.MinPrice,
		MaxPrice:           row.MaxPrice,
		AvgPrice:           row.AvgPrice,
		MinSalePrice:       row.MinSalePrice,
		MaxDiscountPercent: row.MaxDiscountPercent,
	}
	if row.RecordCount == 0 {
		return aggregate, nil
	}

	var first, last schema.PriceHistory
	if err := s.db.WithContext(ctx).
		Where("provider_source_id = ?", providerSourceID).
		Order("recorded_on ASC").
		First(&first).Error; err != nil {
		return nil, fmt.Errorf("failed to get first price record: %w", err)
	}
	if err := s.db.WithContext(ctx).
		Where("provider_source_id = ?", providerSourceID).
		Order("recorded_on DESC").
		First(&last).Error; err != nil {
		return nil, fmt.Errorf("failed to get last price record: %w", err)
	}
	aggregate.FirstRecordedOn = &first.RecordedOn
	aggregate.LastRecordedOn = &last.RecordedOn

	return aggregate, nil
}

// DateOf truncates t to its calendar day in t's own location and returns that day as midnight UTC.
// Stored dates are therefore independent of the database session time zone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func marshalJSON(v interface{}) (datatypes.JSON, error) {
	switch val := v.(type) {
	case map[string]string:
		if len(val) == 0 {
			return nil, nil
		}
	case []string:
		if len(val) == 0 {
			return nil, nil
		}
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// mergeStrings appends the items of extra missing from base, keeping base order
func mergeStrings(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range extra {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
