package model

// RestockCandidate is a catalog product joined with its stock and supplier at a warehouse.
type RestockCandidate struct {
	Product Product
	Company Company
	Held    int
}

// InboundOrderLine is a quantity to order from a supplier.
type InboundOrderLine struct {
	GTIN     string `json:"gtin"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderSegment groups the inbound lines of one supplier.
type OrderSegment struct {
	Company    Company            `json:"company"`
	OrderLines []InboundOrderLine `json:"orderLines"`
}

// InboundManifest is the restock plan for one warehouse.
type InboundManifest struct {
	WarehouseID   int            `json:"warehouseId"`
	OrderSegments []OrderSegment `json:"orderSegments"`
}
