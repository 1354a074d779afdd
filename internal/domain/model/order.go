package model

import "github.com/shopspring/decimal"

// OrderLine is a requested quantity of a product.
//
// @Description A product code and the number of units requested
type OrderLine struct {
	GTIN     string `json:"gtin" example:"0000346374230"`
	Quantity int    `json:"quantity" example:"10"`
}

// OutboundOrder asks a warehouse to ship a set of order lines.
type OutboundOrder struct {
	WarehouseID int
	Lines       []OrderLine
}

// ValidatedLine is an order line whose gtin resolved to a product with enough stock.
type ValidatedLine struct {
	Product  Product
	Quantity int
}

// Weight returns the total weight of the line in grams.
func (l ValidatedLine) Weight() decimal.Decimal {
	return l.Product.LineWeight(l.Quantity)
}

// Truck is one vehicle of a fulfillment, numbered from 1.
type Truck struct {
	Number         int
	RemainingGrams decimal.Decimal
	Lines          []OrderLine
	LoadKg         decimal.Decimal
}

// Quantity returns the number of units of gtin loaded on the truck.
func (t Truck) Quantity(gtin string) int {
	total := 0
	for _, l := range t.Lines {
		if l.GTIN == gtin {
			total += l.Quantity
		}
	}
	return total
}

// FulfillmentResult is the outcome of a confirmed outbound order.
type FulfillmentResult struct {
	// TrucksNeeded is ceil(total weight / capacity). It is a lower bound and
	// can be smaller than len(Trucks).
	TrucksNeeded int
	Trucks       []Truck
	State        FulfillmentState
}
