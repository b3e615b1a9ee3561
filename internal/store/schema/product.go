package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Product represents the products table - one canonical entry per underlying release
type Product struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// NormalizedID is the canonical cross-provider product key (e.g. SSIS-865 or fanza-xyz123)
	NormalizedID string `gorm:"column:normalized_id;not null;uniqueIndex:idx_products_normalized_id;type:varchar(128)"`
	// Title is the most recently accepted title
	Title string `gorm:"column:title;not null;type:text"`
	// TitleVariants maps a locale to a localized title, e.g. {"ja": "..."}
	TitleVariants datatypes.JSON `gorm:"column:title_variants;type:jsonb"`
	// CodeVariations holds the alternate spellings of the product code for fuzzy search
	CodeVariations datatypes.JSON `gorm:"column:code_variations;type:jsonb"`
	// Description is the most recently accepted description
	Description string `gorm:"column:description;not null;type:text;default:''"`
	// ThumbnailURL is the default thumbnail
	ThumbnailURL string `gorm:"column:thumbnail_url;not null;type:text;default:''"`
	// ReleaseDate is the release date as reported by a provider
	ReleaseDate *time.Time `gorm:"column:release_date;type:date"`
	// DurationMinutes is the running time in minutes
	DurationMinutes *int `gorm:"column:duration_minutes"`
	// CreatedAt is the timestamp when this product was first accepted
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this product was last refreshed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
