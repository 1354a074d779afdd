package service

import (
	"sort"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultTruckCapacityKg is the payload of one delivery truck.
const DefaultTruckCapacityKg = 2000

var gramsPerKg = decimal.NewFromInt(1000)

// TruckPacker assigns validated lines to trucks.
type TruckPacker interface {
	Pack(lines []model.ValidatedLine) []model.Truck
	TrucksNeeded(lines []model.ValidatedLine) int
}

// BestFitPacker packs lines heaviest first, placing each whole line in the
// open truck it fits most tightly. A line that fits no open truck is loaded onto new
// trucks, as many units per truck as the capacity allows.
type BestFitPacker struct {
	capacity decimal.Decimal
}

var _ TruckPacker = (*BestFitPacker)(nil)

// PackerOption configures a BestFitPacker.
type PackerOption func(*BestFitPacker)

// WithTruckCapacityKg overrides the per truck payload. Non-positive values are ignored.
func WithTruckCapacityKg(kg int) PackerOption {
	return func(p *BestFitPacker) {
		if kg > 0 {
			p.capacity = decimal.NewFromInt(int64(kg)).Mul(gramsPerKg)
		}
	}
}

// NewBestFitPacker returns a packer for DefaultTruckCapacityKg trucks.
func NewBestFitPacker(opts ...PackerOption) *BestFitPacker {
	p := &BestFitPacker{capacity: decimal.NewFromInt(DefaultTruckCapacityKg).Mul(gramsPerKg)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CapacityGrams returns the per truck payload in grams.
func (p *BestFitPacker) CapacityGrams() decimal.Decimal {
	return p.capacity
}

// TrucksNeeded returns ceil(total weight / capacity). It is a lower bound
// and does not always equal len(Pack(lines)).
func (p *BestFitPacker) TrucksNeeded(lines []model.ValidatedLine) int {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Weight())
	}
	return int(total.Div(p.capacity).Ceil().IntPart())
}

// Pack returns the trucks in opening order, numbered from 1. Every truck stays
// within capacity except one carrying a single unit heavier than a truck.
func (p *BestFitPacker) Pack(lines []model.ValidatedLine) []model.Truck {
	sorted := make([]model.ValidatedLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight().GreaterThan(sorted[j].Weight())
	})

	var trucks []model.Truck
	for _, line := range sorted {
		unit := line.Product.WeightGrams
		remaining := line.Quantity

		if unit.IsZero() {
			if len(trucks) == 0 {
				trucks = append(trucks, p.newTruck(len(trucks)+1))
			}
			load(&trucks[0], line.Product.GTIN, remaining, decimal.Zero)
			continue
		}

		for remaining > 0 {
			weight := unit.Mul(decimal.NewFromInt(int64(remaining)))
			if i := bestFit(trucks, weight); i >= 0 {
				load(&trucks[i], line.Product.GTIN, remaining, weight)
				remaining = 0
				continue
			}

			truck := p.newTruck(len(trucks) + 1)
			n := p.unitsPerTruck(unit)
			if n > remaining {
				n = remaining
			}
			load(&truck, line.Product.GTIN, n, unit.Mul(decimal.NewFromInt(int64(n))))
			trucks = append(trucks, truck)
			remaining -= n
		}
	}

	for i := range trucks {
		loadKg(&trucks[i], lines)
	}
	return trucks
}

// unitsPerTruck is floor(capacity / unit), at least 1 so that an overweight
// unit still ships alone.
func (p *BestFitPacker) unitsPerTruck(unit decimal.Decimal) int {
	n := int(p.capacity.Div(unit).Floor().IntPart())
	if n < 1 {
		return 1
	}
	return n
}

func (p *BestFitPacker) newTruck(number int) model.Truck {
	return model.Truck{Number: number, RemainingGrams: p.capacity}
}

// bestFit returns the index of the open truck with the least remaining
// capacity that still holds weight, or -1. Ties go to the lower truck number.
func bestFit(trucks []model.Truck, weight decimal.Decimal) int {
	best := -1
	for i := range trucks {
		if trucks[i].RemainingGrams.LessThan(weight) {
			continue
		}
		if best < 0 || trucks[i].RemainingGrams.LessThan(trucks[best].RemainingGrams) {
			best = i
		}
	}
	return best
}

func load(t *model.Truck, gtin string, quantity int, weight decimal.Decimal) {
	t.RemainingGrams = t.RemainingGrams.Sub(weight)
	for i := range t.Lines {
		if t.Lines[i].GTIN == gtin {
			t.Lines[i].Quantity += quantity
			return
		}
	}
	t.Lines = append(t.Lines, model.OrderLine{GTIN: gtin, Quantity: quantity})
}

// loadKg sets the load from the assigned lines, in kilograms to 3 decimals.
func loadKg(t *model.Truck, lines []model.ValidatedLine) {
	grams := decimal.Zero
	for _, tl := range t.Lines {
		for _, l := range lines {
			if l.Product.GTIN == tl.GTIN {
				grams = grams.Add(l.Product.LineWeight(tl.Quantity))
				break
			}
		}
	}
	t.LoadKg = grams.Div(gramsPerKg).Round(3)
}
