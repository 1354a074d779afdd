package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/metrics"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// RestockFactor is how many lower thresholds a restock tops a product up to.
const RestockFactor = 3

// RestockService proposes inbound orders for a warehouse.
type RestockService interface {
	Plan(ctx context.Context, warehouseID int) (*model.InboundManifest, error)
}

// RestockPlanner orders every active product held below its lower threshold.
type RestockPlanner struct {
	reader repository.RestockReader
}

var _ RestockService = (*RestockPlanner)(nil)

// NewRestockPlanner returns a planner reading from reader.
func NewRestockPlanner(reader repository.RestockReader) *RestockPlanner {
	return &RestockPlanner{reader: reader}
}

// Plan groups the restock lines of warehouseID by supplier, ordered by gcp.
// Lines inside a segment keep catalog order.
func (p *RestockPlanner) Plan(ctx context.Context, warehouseID int) (*model.InboundManifest, error) {
	candidates, err := p.reader.RestockCandidates(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list restock candidates: %w", err)
	}

	segments := make(map[string]*model.OrderSegment)
	lines := 0
	for _, c := range candidates {
		qty, ok := RestockQuantity(c)
		if !ok {
			continue
		}
		seg, exists := segments[c.Company.GCP]
		if !exists {
			seg = &model.OrderSegment{Company: c.Company}
			segments[c.Company.GCP] = seg
		}
		seg.OrderLines = append(seg.OrderLines, model.InboundOrderLine{
			GTIN:     c.Product.GTIN,
			Name:     c.Product.Name,
			Quantity: qty,
		})
		lines++
	}

	manifest := &model.InboundManifest{
		WarehouseID:   warehouseID,
		OrderSegments: make([]model.OrderSegment, 0, len(segments)),
	}
	for _, seg := range segments {
		manifest.OrderSegments = append(manifest.OrderSegments, *seg)
	}
	sort.Slice(manifest.OrderSegments, func(i, j int) bool {
		return manifest.OrderSegments[i].Company.GCP < manifest.OrderSegments[j].Company.GCP
	})

	metrics.RecordRestockPlan(lines)
	log.Debug().
		Int("warehouse_id", warehouseID).
		Int("segments", len(manifest.OrderSegments)).
		Int("lines", lines).
		Msg("Restock plan built")
	return manifest, nil
}

// RestockQuantity returns how many units of c to order. ok is false when c is
// discontinued or held at or above its lower threshold.
func RestockQuantity(c model.RestockCandidate) (qty int, ok bool) {
	if c.Product.Discontinued || c.Held >= c.Product.LowerThreshold {
		return 0, false
	}
	qty = c.Product.LowerThreshold*RestockFactor - c.Held
	if qty < c.Product.MinimumOrderQuantity {
		qty = c.Product.MinimumOrderQuantity
	}
	return qty, true
}
