package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.Store = (*Store)(nil)

const productColumns = `p_id, gtin_cd, gcp_cd, gtin_nm, m_g, l_th, ds, min_qt`

// Store implements repository.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an open pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ProductByGTIN implements repository.CatalogReader.
func (s *Store) ProductByGTIN(ctx context.Context, gtin string) (*model.Product, error) {
	return productByGTIN(ctx, s.pool, gtin)
}

// InWarehouse runs fn in one transaction holding the warehouse advisory lock,
// so concurrent orders for the same warehouse cannot interleave their
// read, check and decrement steps.
func (s *Store) InWarehouse(ctx context.Context, warehouseID int, fn func(tx repository.WarehouseTx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(warehouseID)); err != nil {
		return fmt.Errorf("lock warehouse %d: %w", warehouseID, err)
	}
	if err := fn(&warehouseTx{q: tx, warehouseID: warehouseID}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RestockCandidates implements repository.RestockReader.
func (s *Store) RestockCandidates(ctx context.Context, warehouseID int) ([]model.RestockCandidate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT g.p_id, g.gtin_cd, g.gcp_cd, g.gtin_nm, g.m_g, g.l_th, g.ds, g.min_qt, s.hld,
		       COALESCE(c.gln_nm, ''), COALESCE(c.gln_addr_02, ''), COALESCE(c.gln_addr_03, ''),
		       COALESCE(c.gln_addr_04, ''), COALESCE(c.gln_addr_postalcode, ''), COALESCE(c.gln_addr_city, ''),
		       COALESCE(c.contact_tel, ''), COALESCE(c.contact_mail, '')
		FROM stock s
		JOIN gtin g ON g.p_id = s.p_id
		LEFT JOIN gcp c ON c.gcp_cd = g.gcp_cd
		WHERE s.w_id = $1
		ORDER BY g.p_id`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("query restock candidates: %w", err)
	}
	defer rows.Close()

	var out []model.RestockCandidate
	for rows.Next() {
		var (
			c            model.RestockCandidate
			discontinued int
		)
		err := rows.Scan(
			&c.Product.ID, &c.Product.GTIN, &c.Product.GCP, &c.Product.Name, &c.Product.WeightGrams,
			&c.Product.LowerThreshold, &discontinued, &c.Product.MinimumOrderQuantity, &c.Held,
			&c.Company.Name, &c.Company.Addr2, &c.Company.Addr3, &c.Company.Addr4,
			&c.Company.PostalCode, &c.Company.City, &c.Company.Tel, &c.Company.Mail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan restock candidate: %w", err)
		}
		c.Product.Discontinued = discontinued != 0
		c.Company.GCP = c.Product.GCP
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpsertProducts inserts or updates catalog rows by gtin.
func (s *Store) UpsertProducts(ctx context.Context, products ...model.Product) error {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`
			INSERT INTO gtin (gtin_cd, gcp_cd, gtin_nm, m_g, l_th, ds, min_qt)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (gtin_cd) DO UPDATE SET
				gcp_cd = EXCLUDED.gcp_cd, gtin_nm = EXCLUDED.gtin_nm, m_g = EXCLUDED.m_g,
				l_th = EXCLUDED.l_th, ds = EXCLUDED.ds, min_qt = EXCLUDED.min_qt`,
			p.GTIN, p.GCP, p.Name, p.WeightGrams, p.LowerThreshold, boolToInt(p.Discontinued), p.MinimumOrderQuantity)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}
	return nil
}

// UpsertCompanies inserts or updates suppliers by gcp.
func (s *Store) UpsertCompanies(ctx context.Context, companies ...model.Company) error {
	batch := &pgx.Batch{}
	for _, c := range companies {
		batch.Queue(`
			INSERT INTO gcp (gcp_cd, gln_nm, gln_addr_02, gln_addr_03, gln_addr_04, gln_addr_postalcode,
			                 gln_addr_city, contact_tel, contact_mail)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (gcp_cd) DO UPDATE SET
				gln_nm = EXCLUDED.gln_nm, gln_addr_02 = EXCLUDED.gln_addr_02, gln_addr_03 = EXCLUDED.gln_addr_03,
				gln_addr_04 = EXCLUDED.gln_addr_04, gln_addr_postalcode = EXCLUDED.gln_addr_postalcode,
				gln_addr_city = EXCLUDED.gln_addr_city, contact_tel = EXCLUDED.contact_tel,
				contact_mail = EXCLUDED.contact_mail`,
			c.GCP, c.Name, c.Addr2, c.Addr3, c.Addr4, c.PostalCode, c.City, c.Tel, c.Mail)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert companies: %w", err)
	}
	return nil
}

// HealthCheck pings the pool.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every connection.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func productByGTIN(ctx context.Context, q Querier, gtin string) (*model.Product, error) {
	var (
		p            model.Product
		discontinued int
	)
	err := q.QueryRow(ctx, `SELECT `+productColumns+` FROM gtin WHERE gtin_cd = $1`, gtin).Scan(
		&p.ID, &p.GTIN, &p.GCP, &p.Name, &p.WeightGrams, &p.LowerThreshold, &discontinued, &p.MinimumOrderQuantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", gtin, err)
	}
	p.Discontinued = discontinued != 0
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type warehouseTx struct {
	q           Querier
	warehouseID int
}

func (tx *warehouseTx) checkWarehouse(warehouseID int) error {
	if warehouseID != tx.warehouseID {
		return fmt.Errorf("transaction is bound to warehouse %d, got %d", tx.warehouseID, warehouseID)
	}
	return nil
}

func (tx *warehouseTx) ProductByGTIN(ctx context.Context, gtin string) (*model.Product, error) {
	return productByGTIN(ctx, tx.q, gtin)
}

func (tx *warehouseTx) HeldQuantity(ctx context.Context, warehouseID int, productID int64) (int, bool, error) {
	if err := tx.checkWarehouse(warehouseID); err != nil {
		return 0, false, err
	}
	var held int
	err := tx.q.QueryRow(ctx,
		`SELECT hld FROM stock WHERE w_id = $1 AND p_id = $2 FOR UPDATE`, warehouseID, productID,
	).Scan(&held)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get held quantity: %w", err)
	}
	return held, true, nil
}

func (tx *warehouseTx) DecrementStock(ctx context.Context, warehouseID int, alterations []model.StockAlteration) error {
	if err := tx.checkWarehouse(warehouseID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, a := range alterations {
		batch.Queue(`UPDATE stock SET hld = hld - $1 WHERE w_id = $2 AND p_id = $3 AND hld >= $1`,
			a.Quantity, warehouseID, a.ProductID)
	}
	results := tx.q.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for _, a := range alterations {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if n := tag.RowsAffected(); n != 1 {
			return &model.ConsistencyError{WarehouseID: warehouseID, ProductID: a.ProductID, RowsAffected: n}
		}
	}
	return nil
}

func (tx *warehouseTx) AddStock(ctx context.Context, warehouseID int, alterations []model.StockAlteration) error {
	if err := tx.checkWarehouse(warehouseID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, a := range alterations {
		batch.Queue(`
			INSERT INTO stock (p_id, w_id, hld) VALUES ($1, $2, $3)
			ON CONFLICT (p_id, w_id) DO UPDATE SET hld = stock.hld + EXCLUDED.hld`,
			a.ProductID, warehouseID, a.Quantity)
	}
	if err := tx.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}
