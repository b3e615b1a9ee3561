package schema

import (
	"time"
)

// ProviderSource represents the provider_sources table - links a product to one provider listing
type ProviderSource struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ProductID references the canonical product
	ProductID uint64 `gorm:"column:product_id;not null;uniqueIndex:idx_provider_sources_product_provider,priority:1"`
	// ProviderName is the registered provider name
	ProviderName string `gorm:"column:provider_name;not null;type:varchar(64);uniqueIndex:idx_provider_sources_product_provider,priority:2"`
	// ProviderCode is the provider-native product code
	ProviderCode string `gorm:"column:provider_code;not null;type:varchar(128)"`
	// AffiliateURL is the provider link to the product
	AffiliateURL string `gorm:"column:affiliate_url;not null;type:text;default:''"`
	// Price is the latest list price in yen
	Price int `gorm:"column:price;not null;default:0"`
	// SalePrice is the latest sale price, when on sale
	SalePrice *int `gorm:"column:sale_price"`
	// DiscountPercent is the latest discount, when on sale
	DiscountPercent *int `gorm:"column:discount_percent"`
	// LastSeenAt is the time of the most recent accepted observation
	LastSeenAt time.Time `gorm:"column:last_seen_at;not null"`
	// CreatedAt is the timestamp when this source was first linked
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this source was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`

	// Associations
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ProviderSource model
func (ProviderSource) TableName() string {
	return "provider_sources"
}
