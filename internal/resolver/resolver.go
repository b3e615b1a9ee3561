// Package resolver maps accepted extractions onto canonical catalog rows.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/cache"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/identifier"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
	"github.com/feral-file/ff-catalog-ingest/internal/performer"
	"github.com/feral-file/ff-catalog-ingest/internal/registry"
	"github.com/feral-file/ff-catalog-ingest/internal/store"
)

// Resolution is the outcome of resolving one accepted extraction
type Resolution struct {
	ProductID          uint64
	ProviderSourceID   uint64
	NormalizedID       domain.NormalizedID
	IsNewProduct       bool
	PerformersLinked   int
	PerformersRejected int
}

// Resolver resolves accepted extractions to catalog products
//
//go:generate mockgen -source=resolver.go -destination=../mocks/resolver.go -package=mocks -mock_names=Resolver=MockResolver
type Resolver interface {
	// Resolve upserts the product, its provider source and its performer links for an accepted extraction.
	// The extraction must already have passed validation.
	Resolve(ctx context.Context, runCache *cache.RunCache, ext *domain.RawExtraction) (*Resolution, error)
}

type resolver struct {
	store    store.Store
	registry registry.ProviderRegistry
	clock    adapter.Clock
}

// NewResolver creates a new identity resolver
func NewResolver(st store.Store, reg registry.ProviderRegistry, clock adapter.Clock) Resolver {
	return &resolver{
		store:    st,
		registry: reg,
		clock:    clock,
	}
}

// Resolve upserts the product, its provider source and its performer links.
//
// Product and provider source failures are returned. Performer failures are logged and skipped,
// since a product without a performer link is still a valid catalog entry.
func (r *resolver) Resolve(ctx context.Context, runCache *cache.RunCache, ext *domain.RawExtraction) (*Resolution, error) {
	if ext == nil {
		return nil, fmt.Errorf("%w: nil extraction", domain.ErrInvalidExtraction)
	}

	code := strings.TrimSpace(ext.ProviderCode)
	if code == "" {
		return nil, fmt.Errorf("%w: missing provider code", domain.ErrInvalidExtraction)
	}
	provider := strings.ToLower(strings.TrimSpace(ext.Provider))
	if provider == "" {
		return nil, fmt.Errorf("%w: missing provider", domain.ErrInvalidExtraction)
	}

	family := ext.Family
	if family == "" {
		family = r.registry.Family(provider)
	}

	normalizedID := r.registry.Normalizer().Normalize(family, code)
	if normalizedID.Empty() {
		return nil, fmt.Errorf("%w: code %q has no normalized id", domain.ErrInvalidExtraction, code)
	}

	title := ext.TrimmedTitle()
	product, isNew, err := r.store.UpsertProduct(ctx, store.UpsertProductInput{
		NormalizedID:    normalizedID.String(),
		Title:           title,
		TitleVariants:   map[string]string{r.locale(provider): title},
		CodeVariations:  codeVariations(code, normalizedID),
		Description:     strings.TrimSpace(ext.Description),
		ThumbnailURL:    strings.TrimSpace(ext.ThumbnailURL),
		ReleaseDate:     ext.ReleaseDate,
		DurationMinutes: ext.DurationMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product %s: %w", normalizedID, err)
	}

	source, err := r.store.UpsertProviderSource(ctx, store.UpsertProviderSourceInput{
		ProductID:       product.ID,
		ProviderName:    provider,
		ProviderCode:    code,
		AffiliateURL:    strings.TrimSpace(ext.AffiliateURL),
		Price:           ext.Price,
		SalePrice:       ext.SalePrice,
		DiscountPercent: ext.DiscountPercent,
		SeenAt:          r.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert provider source %s/%s: %w", provider, normalizedID, err)
	}

	resolution := &Resolution{
		ProductID:        product.ID,
		ProviderSourceID: source.ID,
		NormalizedID:     normalizedID,
		IsNewProduct:     isNew,
	}

	r.linkPerformers(ctx, runCache, ext, product.ID, code, normalizedID, resolution)

	return resolution, nil
}

// linkPerformers normalizes, screens and links the extraction's performer names
func (r *resolver) linkPerformers(
	ctx context.Context,
	runCache *cache.RunCache,
	ext *domain.RawExtraction,
	productID uint64,
	code string,
	normalizedID domain.NormalizedID,
	resolution *Resolution,
) {
	seen := make(map[string]struct{}, len(ext.Performers))

	for _, raw := range ext.Performers {
		name := performer.Normalize(raw)
		if !performer.IsValidForProduct(name, code) || !performer.IsValidForProduct(name, normalizedID.String()) {
			resolution.PerformersRejected++
			logger.DebugCtx(ctx, "Rejected performer name",
				zap.String("provider", ext.Provider),
				zap.String("normalizedID", normalizedID.String()),
				zap.String("raw", raw))
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		performerID, ok := runCache.Performer(name)
		if !ok {
			p, err := r.store.GetOrCreatePerformer(ctx, name)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to get or create performer",
					zap.Error(err),
					zap.String("name", name))
				continue
			}
			performerID = p.ID
			runCache.SetPerformer(name, performerID)
		}

		linked, err := r.store.LinkProductPerformer(ctx, productID, performerID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to link performer",
				zap.Error(err),
				zap.Uint64("productID", productID),
				zap.Uint64("performerID", performerID))
			continue
		}
		if linked {
			resolution.PerformersLinked++
		}
	}
}

func (r *resolver) locale(provider string) string {
	if info, ok := r.registry.Provider(provider); ok && info.Locale != "" {
		return info.Locale
	}
	return "ja"
}

// codeVariations combines the spellings of the raw code and of the normalized id
func codeVariations(code string, normalizedID domain.NormalizedID) []string {
	variations := identifier.Variations(code)
	seen := make(map[string]struct{}, len(variations))
	for _, v := range variations {
		seen[v] = struct{}{}
	}
	for _, v := range identifier.Variations(normalizedID.String()) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		variations = append(variations, v)
	}
	return variations
}
