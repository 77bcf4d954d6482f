package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the POS backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS m_product (
			prd_id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			price BIGINT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_m_product_code ON m_product (code);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			trd_id BIGSERIAL PRIMARY KEY,
			total_amt BIGINT NOT NULL DEFAULT 0,
			emp_cd TEXT,
			store_cd TEXT,
			pos_no TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS transaction_details (
			trd_id BIGINT NOT NULL REFERENCES transactions(trd_id),
			dtl_id BIGINT NOT NULL,
			prd_id BIGINT NOT NULL REFERENCES m_product(prd_id),
			prd_code TEXT NOT NULL,
			prd_name TEXT NOT NULL,
			prd_price BIGINT NOT NULL,
			quantity BIGINT NOT NULL,
			PRIMARY KEY (trd_id, dtl_id)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
