// Package model defines the core domain entities for the fulfillment service.
package model

import "github.com/shopspring/decimal"

// Product is a catalog item resolved from its gtin.
//
// @Description Catalog product with its unit weight in grams
type Product struct {
	ID   int64  `json:"id" example:"42"`
	GTIN string `json:"gtin" example:"0000346374230"`
	// GCP identifies the supplying company.
	GCP  string `json:"gcp" example:"0000346"`
	Name string `json:"name" example:"Dog bowl, 2l"`
	// WeightGrams is the weight of a single unit.
	WeightGrams          decimal.Decimal `json:"weightGrams" swaggertype:"number" example:"300"`
	LowerThreshold       int             `json:"lowerThreshold" example:"150"`
	Discontinued         bool            `json:"discontinued" example:"false"`
	MinimumOrderQuantity int             `json:"minimumOrderQuantity" example:"20"`
}

// LineWeight returns the weight in grams of quantity units of the product.
func (p Product) LineWeight(quantity int) decimal.Decimal {
	return p.WeightGrams.Mul(decimal.NewFromInt(int64(quantity)))
}

// Company is a supplier identified by its gcp.
type Company struct {
	GCP        string `json:"gcp"`
	Name       string `json:"name"`
	Addr2      string `json:"addr2,omitempty"`
	Addr3      string `json:"addr3,omitempty"`
	Addr4      string `json:"addr4,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Tel        string `json:"tel,omitempty"`
	Mail       string `json:"mail,omitempty"`
}

// StockRecord is the held quantity of one product at one warehouse.
type StockRecord struct {
	WarehouseID int   `json:"warehouseId"`
	ProductID   int64 `json:"productId"`
	Held        int   `json:"held"`
}

// StockAlteration is a quantity to add to or remove from a product's stock.
type StockAlteration struct {
	ProductID int64
	Quantity  int
}
