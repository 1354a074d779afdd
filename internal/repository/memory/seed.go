package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/shipit-service/internal/domain/model"
)

// Seed is the JSON document accepted by LoadSeed.
type Seed struct {
	Companies []model.Company `json:"companies"`
	Products  []model.Product `json:"products"`
	Stock     []SeedStock     `json:"stock"`
}

// SeedStock sets the held quantity of a gtin at a warehouse.
type SeedStock struct {
	WarehouseID int    `json:"warehouseId"`
	GTIN        string `json:"gtin"`
	Held        int    `json:"held"`
}

// LoadSeedFile reads a seed document from path into s.
func (s *Store) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return s.LoadSeed(f)
}

// LoadSeed reads a seed document into s. Stock entries must reference seeded gtins.
func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	s.UpsertCompanies(seed.Companies...)
	ids := make(map[string]int64, len(seed.Products))
	for _, p := range s.UpsertProducts(seed.Products...) {
		ids[p.GTIN] = p.ID
	}
	for _, st := range seed.Stock {
		id, ok := ids[st.GTIN]
		if !ok {
			return fmt.Errorf("seed stock references unknown gtin %q", st.GTIN)
		}
		s.SetStock(st.WarehouseID, id, st.Held)
	}
	return nil
}
