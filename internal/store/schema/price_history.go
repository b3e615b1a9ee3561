package schema

import (
	"time"
)

// PriceHistory represents the price_histories table - at most one observation per provider source per day
type PriceHistory struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ProviderSourceID references the provider listing the price was observed on
	ProviderSourceID uint64 `gorm:"column:provider_source_id;not null;uniqueIndex:idx_price_histories_source_day,priority:1"`
	// RecordedOn is the calendar day of the observation, stored as midnight UTC
	RecordedOn time.Time `gorm:"column:recorded_on;not null;type:date;uniqueIndex:idx_price_histories_source_day,priority:2"`
	// Price is the list price in yen
	Price int `gorm:"column:price;not null"`
	// SalePrice is the sale price, when on sale
	SalePrice *int `gorm:"column:sale_price"`
	// DiscountPercent is the discount, when on sale
	DiscountPercent *int `gorm:"column:discount_percent"`
	// CreatedAt is the timestamp of the first observation that day
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp of the latest observation that day
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`

	// Associations
	ProviderSource ProviderSource `gorm:"foreignKey:ProviderSourceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the PriceHistory model
func (PriceHistory) TableName() string {
	return "price_histories"
}
