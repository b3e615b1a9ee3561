package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func intPtr(v int) *int {
	return &v
}

// buildTestProduct creates a test product input
func buildTestProduct(normalizedID string) UpsertProductInput {
	duration := 120
	release := time.Date(2023, 10, 17, 0, 0, 0, 0, time.UTC)
	return UpsertProductInput{
		NormalizedID:    normalizedID,
		Title:           fmt.Sprintf("Title of %s", normalizedID),
		TitleVariants:   map[string]string{"ja": fmt.Sprintf("%s のタイトル", normalizedID)},
		CodeVariations:  []string{normalizedID},
		Description:     "description",
		ThumbnailURL:    "https://example.com/thumb.jpg",
		ReleaseDate:     &release,
		DurationMinutes: &duration,
	}
}

// buildTestProviderSource creates a test provider source input
func buildTestProviderSource(productID uint64, provider string, price int) UpsertProviderSourceInput {
	return UpsertProviderSourceInput{
		ProductID:    productID,
		ProviderName: provider,
		ProviderCode: "ssis00865",
		AffiliateURL: "https://example.com/" + provider,
		Price:        price,
		SeenAt:       time.Now(),
	}
}

// createTestSource creates a product and a provider source and returns the source id
func createTestSource(t *testing.T, store Store, normalizedID, provider string) uint64 {
	ctx := context.Background()
	product, _, err := store.UpsertProduct(ctx, buildTestProduct(normalizedID))
	require.NoError(t, err)
	source, err := store.UpsertProviderSource(ctx, buildTestProviderSource(product.ID, provider, 1980))
	require.NoError(t, err)
	return source.ID
}

// =============================================================================
// Test: Products
// =============================================================================

func testUpsertProduct(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("first upsert creates the product", func(t *testing.T) {
		input := buildTestProduct("SSIS-865")

		product, isNew, err := store.UpsertProduct(ctx, input)
		require.NoError(t, err)
		assert.True(t, isNew)
		assert.NotZero(t, product.ID)
		assert.Equal(t, "SSIS-865", product.NormalizedID)
		assert.Equal(t, input.Title, product.Title)

		stored, err := store.GetProductByNormalizedID(ctx, "SSIS-865")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, product.ID, stored.ID)
		require.NotNil(t, stored.DurationMinutes)
		assert.Equal(t, 120, *stored.DurationMinutes)
	})

	t.Run("second upsert refreshes the existing product", func(t *testing.T) {
		first, isNew, err := store.UpsertProduct(ctx, buildTestProduct("ABW-001"))
		require.NoError(t, err)
		require.True(t, isNew)

		duration := 150
		second, isNew, err := store.UpsertProduct(ctx, UpsertProductInput{
			NormalizedID:    "ABW-001",
			Title:           "Refreshed title",
			TitleVariants:   map[string]string{"en": "English title"},
			CodeVariations:  []string{"ABW-001", "abw001"},
			DurationMinutes: &duration,
		})
		require.NoError(t, err)
		assert.False(t, isNew)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Refreshed title", second.Title)
		// empty fields never erase stored values
		assert.Equal(t, "https://example.com/thumb.jpg", second.ThumbnailURL)
		assert.Equal(t, "description", second.Description)
		require.NotNil(t, second.DurationMinutes)
		assert.Equal(t, 150, *second.DurationMinutes)

		var variants map[string]string
		require.NoError(t, json.Unmarshal(second.TitleVariants, &variants))
		assert.Equal(t, "English title", variants["en"])
		assert.NotEmpty(t, variants["ja"])

		var codes []string
		require.NoError(t, json.Unmarshal(second.CodeVariations, &codes))
		assert.Equal(t, []string{"ABW-001", "abw001"}, codes)
	})

	t.Run("repeated upserts report new exactly once", func(t *testing.T) {
		newCount := 0
		for i := 0; i < 3; i++ {
			_, isNew, err := store.UpsertProduct(ctx, buildTestProduct("LUXU-1234"))
			require.NoError(t, err)
			if isNew {
				newCount++
			}
		}
		assert.Equal(t, 1, newCount)
	})

	t.Run("empty normalized id is rejected", func(t *testing.T) {
		_, _, err := store.UpsertProduct(ctx, UpsertProductInput{Title: "no id"})
		assert.Error(t, err)
	})

	t.Run("missing product returns nil", func(t *testing.T) {
		product, err := store.GetProductByNormalizedID(ctx, "NONE-000")
		assert.NoError(t, err)
		assert.Nil(t, product)
	})
}

// =============================================================================
// Test: Provider sources
// =============================================================================

func testUpsertProviderSource(t *testing.T, store Store) {
	ctx := context.Background()

	product, _, err := store.UpsertProduct(ctx, buildTestProduct("SSIS-865"))
	require.NoError(t, err)

	first, err := store.UpsertProviderSource(ctx, buildTestProviderSource(product.ID, "fanza", 1980))
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, 1980, first.Price)

	update := buildTestProviderSource(product.ID, "fanza", 1480)
	update.SalePrice = intPtr(980)
	update.DiscountPercent = intPtr(50)
	update.AffiliateURL = "https://example.com/fanza/new"
	second, err := store.UpsertProviderSource(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "conflict on (product, provider) updates in place")
	assert.Equal(t, 1480, second.Price)
	require.NotNil(t, second.SalePrice)
	assert.Equal(t, 980, *second.SalePrice)
	assert.Equal(t, "https://example.com/fanza/new", second.AffiliateURL)

	other, err := store.UpsertProviderSource(ctx, buildTestProviderSource(product.ID, "mgs", 2000))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	sources, err := store.GetProviderSources(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "fanza", sources[0].ProviderName)
	assert.Equal(t, "mgs", sources[1].ProviderName)
}

// =============================================================================
// Test: Performers
// =============================================================================

func testPerformers(t *testing.T, store Store) {
	ctx := context.Background()

	product, _, err := store.UpsertProduct(ctx, buildTestProduct("SSIS-865"))
	require.NoError(t, err)

	first, err := store.GetOrCreatePerformer(ctx, "三上悠亜")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	again, err := store.GetOrCreatePerformer(ctx, "三上悠亜")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := store.GetOrCreatePerformer(ctx, "Maria Ozawa")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	linked, err := store.LinkProductPerformer(ctx, product.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	linked, err = store.LinkProductPerformer(ctx, product.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, linked, "duplicate pair is a no-op")

	_, err = store.LinkProductPerformer(ctx, product.ID, other.ID)
	require.NoError(t, err)

	performers, err := store.GetProductPerformers(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, performers, 2)
	assert.Equal(t, "Maria Ozawa", performers[0].Name)
	assert.Equal(t, "三上悠亜", performers[1].Name)

	_, err = store.GetOrCreatePerformer(ctx, "")
	assert.Error(t, err)
}

// =============================================================================
// Test: Price history
// =============================================================================

func testPriceHistory(t *testing.T, store Store) {
	ctx := context.Background()
	sourceID := createTestSource(t, store, "SSIS-865", "fanza")

	day1 := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 10, 2, 9, 0, 0, 0, time.UTC)

	t.Run("same day observation overwrites", func(t *testing.T) {
		require.NoError(t, store.UpsertPriceHistory(ctx, UpsertPriceHistoryInput{
			ProviderSourceID: sourceID,
			RecordedOn:       day1,
			Price:            1980,
		}))
		require.NoError(t, store.UpsertPriceHistory(ctx, UpsertPriceHistoryInput{
			ProviderSourceID: sourceID,
			RecordedOn:       day1.Add(6 * time.Hour),
			Price:            1980,
			SalePrice:        intPtr(980),
			DiscountPercent:  intPtr(50),
		}))

		entries, err := store.GetPriceHistory(ctx, sourceID, time.Time{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].SalePrice)
		assert.Equal(t, 980, *entries[0].SalePrice)
		assert.Equal(t, DateOf(day1), entries[0].RecordedOn.UTC())
	})

	t.Run("batch spans days in one transaction", func(t *testing.T) {
		require.NoError(t, store.UpsertPriceHistories(ctx, []UpsertPriceHistoryInput{
			{ProviderSourceID: sourceID, RecordedOn: day2, Price: 1780},
			{ProviderSourceID: sourceID, RecordedOn: day2, Price: 1680},
		}))
		require.NoError(t, store.UpsertPriceHistories(ctx, nil))

		entries, err := store.GetPriceHistory(ctx, sourceID, time.Time{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1680, entries[1].Price, "later value in the batch wins")

		recent, err := store.GetPriceHistory(ctx, sourceID, day2)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, DateOf(day2), recent[0].RecordedOn.UTC())
	})
}

func testPriceAggregate(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("no records", func(t *testing.T) {
		sourceID := createTestSource(t, store, "EMPTY-001", "fanza")

		aggregate, err := store.GetPriceAggregate(ctx, sourceID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), aggregate.RecordCount)
		assert.Nil(t, aggregate.MinPrice)
		assert.Nil(t, aggregate.FirstRecordedOn)
	})

	t.Run("with records", func(t *testing.T) {
		sourceID := createTestSource(t, store, "SSIS-865", "fanza")
		base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, store.UpsertPriceHistories(ctx, []UpsertPriceHistoryInput{
			{ProviderSourceID: sourceID, RecordedOn: base, Price: 1980},
			{ProviderSourceID: sourceID, RecordedOn: base.AddDate(0, 0, 1), Price: 980, SalePrice: intPtr(500), DiscountPercent: intPtr(49)},
			{ProviderSourceID: sourceID, RecordedOn: base.AddDate(0, 0, 2), Price: 1500},
		}))

		aggregate, err := store.GetPriceAggregate(ctx, sourceID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), aggregate.RecordCount)
		require.NotNil(t, aggregate.MinPrice)
		assert.Equal(t, 980, *aggregate.MinPrice)
		require.NotNil(t, aggregate.MaxPrice)
		assert.Equal(t, 1980, *aggregate.MaxPrice)
		require.NotNil(t, aggregate.AvgPrice)
		assert.InDelta(t, 1486.67, *aggregate.AvgPrice, 0.01)
		require.NotNil(t, aggregate.MinSalePrice)
		assert.Equal(t, 500, *aggregate.MinSalePrice)
		require.NotNil(t, aggregate.MaxDiscountPercent)
		assert.Equal(t, 49, *aggregate.MaxDiscountPercent)
		require.NotNil(t, aggregate.FirstRecordedOn)
		require.NotNil(t, aggregate.LastRecordedOn)
		assert.Equal(t, DateOf(base), aggregate.FirstRecordedOn.UTC())
		assert.Equal(t, DateOf(base.AddDate(0, 0, 2)), aggregate.LastRecordedOn.UTC())
	})
}

// testConcurrentWrites races writers on one normalized id, one performer name and one link
func testConcurrentWrites(t *testing.T, store Store, normalizedID, performerName string) {
	ctx := context.Background()
	const writers = 8

	var (
		wg         sync.WaitGroup
		products   [writers]*schema.Product
		performers [writers]*schema.Performer
		created    [writers]bool
		errs       [writers]error
	)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			products[i], created[i], errs[i] = store.UpsertProduct(ctx, buildTestProduct(normalizedID))
			if errs[i] != nil {
				return
			}
			performers[i], errs[i] = store.GetOrCreatePerformer(ctx, performerName)
		}(i)
	}
	wg.Wait()

	newCount := 0
	for i := range writers {
		require.NoError(t, errs[i])
		if created[i] {
			newCount++
		}
		assert.Equal(t, products[0].ID, products[i].ID)
		assert.Equal(t, performers[0].ID, performers[i].ID)
	}
	assert.Equal(t, 1, newCount, "exactly one writer creates the product")

	var linked [writers]bool
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			linked[i], errs[i] = store.LinkProductPerformer(ctx, products[0].ID, performers[0].ID)
		}(i)
	}
	wg.Wait()

	linkCount := 0
	for i := range writers {
		require.NoError(t, errs[i])
		if linked[i] {
			linkCount++
		}
	}
	assert.Equal(t, 1, linkCount, "exactly one writer creates the link")

	stored, err := store.GetProductPerformers(ctx, products[0].ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, performerName, stored[0].Name)
}

func testPing(t *testing.T, store Store) {
	assert.NoError(t, store.Ping(context.Background()))
}

func TestDateOf(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// 23:30 UTC on Sep 30 is already Oct 1 in Tokyo
	observed := time.Date(2025, 9, 30, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), DateOf(observed.In(tokyo)))
	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), DateOf(observed))
}

func TestMergeStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergeStrings([]string{"a", "b"}, []string{"b", "c"}))
	assert.Equal(t, []string{"x"}, mergeStrings(nil, []string{"x", "x"}))
}

// RunStoreTests runs all store tests against a specific store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Ping", testPing},
		{"UpsertProduct", testUpsertProduct},
		{"UpsertProviderSource", testUpsertProviderSource},
		{"Performers", testPerformers},
		{"PriceHistory", testPriceHistory},
		{"PriceAggregate", testPriceAggregate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
