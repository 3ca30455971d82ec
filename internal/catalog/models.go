package catalog

import "time"

// Product is one storefront grid item. Prices are cents to avoid float
// money.
type Product struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ASIN               string `gorm:"type:varchar(16);uniqueIndex;not null" json:"asin"`
	Title              string `gorm:"type:varchar(255);not null" json:"title"`
	PriceCents         int64  `gorm:"not null" json:"price_cents"`
	OriginalPriceCents int64  `json:"original_price_cents"`
	Image              string `gorm:"type:varchar(512)" json:"image"`
	Category           string `gorm:"type:varchar(64);index" json:"category"`
	Discount           int    `json:"discount"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Product) TableName() string { return "catalog_products" }

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string { return "catalog_categories" }
