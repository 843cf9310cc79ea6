package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category enumerates the supported product categories.
type Category string

const (
	CategorySmartphone Category = "Smartphone"
	CategoryLaptop     Category = "Laptop"
	CategoryAppliance  Category = "Appliance"
)

// ParseCategory converts a raw category token into a Category.
// The second return value reports whether the token is recognized.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategorySmartphone, CategoryLaptop, CategoryAppliance:
		return Category(s), true
	}
	return "", false
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// Grouping selects the catalog query mode: everything, one category,
// or one exact model.
type Grouping string

const (
	GroupingNone     Grouping = ""
	GroupingCategory Grouping = "category"
	GroupingModel    Grouping = "model"
)

// Product represents a catalog line item and its current stock.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID           int             `db:"id" json:"-"`
	Model        string          `db:"model" json:"model"`
	Category     Category        `db:"category" json:"category"`
	Quantity     int             `db:"quantity" json:"quantity"`
	Details      string          `db:"details" json:"details"`
	SellingPrice decimal.Decimal `db:"selling_price" json:"sellingPrice"`
	ArrivalDate  Date            `db:"arrival_date" json:"arrivalDate"`
	CreatedAt    time.Time       `db:"created_at" json:"-"`
}
