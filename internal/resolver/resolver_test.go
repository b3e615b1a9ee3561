package resolver_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog-ingest/internal/cache"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/mocks"
	"github.com/feral-file/ff-catalog-ingest/internal/registry"
	"github.com/feral-file/ff-catalog-ingest/internal/resolver"
	"github.com/feral-file/ff-catalog-ingest/internal/store"
	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
	"github.com/feral-file/ff-catalog-ingest/internal/store/storetest"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func buildExtraction(provider, code string, performers ...string) *domain.RawExtraction {
	return &domain.RawExtraction{
		Provider:     provider,
		ProviderCode: code,
		Title:        "  新人NO.1 STYLE 専属デビュー  ",
		Description:  "作品の説明文です。",
		Price:        1980,
		Performers:   performers,
		ThumbnailURL: "https://example.com/thumb.jpg",
		AffiliateURL: "https://example.com/af/" + code,
	}
}

type resolverMocks struct {
	store *mocks.MockStore
	clock *mocks.MockClock
}

func setupResolver(t *testing.T) (resolver.Resolver, *resolverMocks) {
	ctrl := gomock.NewController(t)
	m := &resolverMocks{
		store: mocks.NewMockStore(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	m.clock.EXPECT().Now().Return(fixedNow).AnyTimes()

	return resolver.NewResolver(m.store, registry.MustLoadDefault(), m.clock), m
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("new product with performers", func(t *testing.T) {
		res, m := setupResolver(t)

		var productInput store.UpsertProductInput
		var sourceInput store.UpsertProviderSourceInput
		m.store.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in store.UpsertProductInput) (*schema.Product, bool, error) {
				productInput = in
				return &schema.Product{ID: 1, NormalizedID: in.NormalizedID}, true, nil
			})
		m.store.EXPECT().UpsertProviderSource(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in store.UpsertProviderSourceInput) (*schema.ProviderSource, error) {
				sourceInput = in
				return &schema.ProviderSource{ID: 10, ProductID: in.ProductID, ProviderName: in.ProviderName}, nil
			})
		m.store.EXPECT().GetOrCreatePerformer(gomock.Any(), "三上悠亜").Return(&schema.Performer{ID: 5, Name: "三上悠亜"}, nil)
		m.store.EXPECT().LinkProductPerformer(gomock.Any(), uint64(1), uint64(5)).Return(true, nil)

		ext := buildExtraction("FANZA", "ssis00865", "三上悠亜", "SSIS-865", "素人", " 三上 悠亜 ")
		resolution, err := res.Resolve(ctx, cache.NewRunCache(), ext)
		require.NoError(t, err)

		assert.Equal(t, uint64(1), resolution.ProductID)
		assert.Equal(t, uint64(10), resolution.ProviderSourceID)
		assert.Equal(t, domain.NormalizedID("SSIS-865"), resolution.NormalizedID)
		assert.True(t, resolution.IsNewProduct)
		assert.Equal(t, 1, resolution.PerformersLinked)
		assert.Equal(t, 2, resolution.PerformersRejected)

		assert.Equal(t, "SSIS-865", productInput.NormalizedID)
		assert.Equal(t, "新人NO.1 STYLE 専属デビュー", productInput.Title)
		assert.Equal(t, map[string]string{"ja": "新人NO.1 STYLE 専属デビュー"}, productInput.TitleVariants)
		assert.Contains(t, productInput.CodeVariations, "ssis00865")
		assert.Contains(t, productInput.CodeVariations, "SSIS-865")
		assert.Contains(t, productInput.CodeVariations, "ssis865")

		assert.Equal(t, "fanza", sourceInput.ProviderName)
		assert.Equal(t, "ssis00865", sourceInput.ProviderCode)
		assert.Equal(t, 1980, sourceInput.Price)
		assert.Equal(t, fixedNow, sourceInput.SeenAt)
	})

	t.Run("cached performer skips store lookup", func(t *testing.T) {
		res, m := setupResolver(t)

		m.store.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(&schema.Product{ID: 2}, false, nil)
		m.store.EXPECT().UpsertProviderSource(gomock.Any(), gomock.Any()).Return(&schema.ProviderSource{ID: 20}, nil)
		m.store.EXPECT().LinkProductPerformer(gomock.Any(), uint64(2), uint64(7)).Return(false, nil)

		runCache := cache.NewRunCache()
		runCache.SetPerformer("河北彩花", 7)

		resolution, err := res.Resolve(ctx, runCache, buildExtraction("mgs", "SSIS-865", "河北彩花"))
		require.NoError(t, err)

		assert.False(t, resolution.IsNewProduct)
		assert.Equal(t, 0, resolution.PerformersLinked)
		hits, _ := runCache.Stats()
		assert.Equal(t, uint64(1), hits)
	})

	t.Run("performer failure is skipped", func(t *testing.T) {
		res, m := setupResolver(t)

		m.store.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(&schema.Product{ID: 3}, true, nil)
		m.store.EXPECT().UpsertProviderSource(gomock.Any(), gomock.Any()).Return(&schema.ProviderSource{ID: 30}, nil)
		m.store.EXPECT().GetOrCreatePerformer(gomock.Any(), "明日花キララ").Return(nil, errors.New("deadlock"))
		m.store.EXPECT().GetOrCreatePerformer(gomock.Any(), "Yua Mikami").Return(&schema.Performer{ID: 8}, nil)
		m.store.EXPECT().LinkProductPerformer(gomock.Any(), uint64(3), uint64(8)).Return(true, nil)

		resolution, err := res.Resolve(ctx, cache.NewRunCache(), buildExtraction("fanza", "ssis00865", "明日花キララ", "Yua  Mikami"))
		require.NoError(t, err)
		assert.Equal(t, 1, resolution.PerformersLinked)
	})

	t.Run("product upsert failure", func(t *testing.T) {
		res, m := setupResolver(t)

		m.store.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("connection refused"))

		resolution, err := res.Resolve(ctx, cache.NewRunCache(), buildExtraction("fanza", "ssis00865"))
		assert.Error(t, err)
		assert.Nil(t, resolution)
		assert.Contains(t, err.Error(), "SSIS-865")
	})

	t.Run("provider source upsert failure", func(t *testing.T) {
		res, m := setupResolver(t)

		m.store.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(&schema.Product{ID: 4}, true, nil)
		m.store.EXPECT().UpsertProviderSource(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := res.Resolve(ctx, cache.NewRunCache(), buildExtraction("fanza", "ssis00865"))
		assert.Error(t, err)
	})

	t.Run("invalid extractions", func(t *testing.T) {
		res, _ := setupResolver(t)

		for name, ext := range map[string]*domain.RawExtraction{
			"nil":              nil,
			"missing code":     buildExtraction("fanza", "  "),
			"missing provider": buildExtraction("", "ssis00865"),
		} {
			_, err := res.Resolve(ctx, cache.NewRunCache(), ext)
			assert.ErrorIs(t, err, domain.ErrInvalidExtraction, name)
		}
	})

	t.Run("unknown provider uses fallback id", func(t *testing.T) {
		res, m := setupResolver(t)

		m.store.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in store.UpsertProductInput) (*schema.Product, bool, error) {
				assert.Equal(t, "newshop-abc123", in.NormalizedID)
				return &schema.Product{ID: 9}, true, nil
			})
		m.store.EXPECT().UpsertProviderSource(gomock.Any(), gomock.Any()).Return(&schema.ProviderSource{ID: 90}, nil)

		resolution, err := res.Resolve(ctx, cache.NewRunCache(), buildExtraction("NewShop", "ABC123"))
		require.NoError(t, err)
		assert.Equal(t, domain.NormalizedID("newshop-abc123"), resolution.NormalizedID)
	})
}

func TestResolver_Integration(t *testing.T) {
	ctx := context.Background()
	st, _ := storetest.NewSQLite(t)

	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(fixedNow).AnyTimes()

	res := resolver.NewResolver(st, registry.MustLoadDefault(), clock)
	runCache := cache.NewRunCache()

	first, err := res.Resolve(ctx, runCache, buildExtraction("fanza", "ssis00865", "三上悠亜"))
	require.NoError(t, err)
	assert.True(t, first.IsNewProduct)
	assert.Equal(t, 1, first.PerformersLinked)

	again, err := res.Resolve(ctx, runCache, buildExtraction("fanza", "ssis00865", "三上悠亜"))
	require.NoError(t, err)
	assert.False(t, again.IsNewProduct)
	assert.Equal(t, first.ProductID, again.ProductID)
	assert.Equal(t, first.ProviderSourceID, again.ProviderSourceID)
	assert.Equal(t, 0, again.PerformersLinked)

	other, err := res.Resolve(ctx, runCache, buildExtraction("mgs", "SSIS-865", "三上悠亜"))
	require.NoError(t, err)
	assert.False(t, other.IsNewProduct)
	assert.Equal(t, first.ProductID, other.ProductID)
	assert.NotEqual(t, first.ProviderSourceID, other.ProviderSourceID)

	sources, err := st.GetProviderSources(ctx, first.ProductID)
	require.NoError(t, err)
	assert.Len(t, sources, 2)

	performers, err := st.GetProductPerformers(ctx, first.ProductID)
	require.NoError(t, err)
	require.Len(t, performers, 1)
	assert.Equal(t, "三上悠亜", performers[0].Name)

	product, err := st.GetProductByNormalizedID(ctx, "SSIS-865")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "新人NO.1 STYLE 専属デビュー", product.Title)
}
