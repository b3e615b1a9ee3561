package schema

import (
	"time"
)

// Performer represents the performers table
type Performer struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_performers_name;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the Performer model
func (Performer) TableName() string {
	return "performers"
}

// ProductPerformer represents the product_performers association table
type ProductPerformer struct {
	ProductID   uint64    `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	PerformerID uint64    `gorm:"column:performer_id;primaryKey;autoIncrement:false;index:idx_product_performers_performer_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime"`

	// Associations
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Performer Performer `gorm:"foreignKey:PerformerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ProductPerformer model
func (ProductPerformer) TableName() string {
	return "product_performers"
}
