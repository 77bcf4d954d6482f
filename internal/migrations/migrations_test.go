package migrations

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestRunCreatesSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	for _, fragment := range []string{
		`CREATE TABLE IF NOT EXISTS m_product`,
		`CREATE INDEX IF NOT EXISTS idx_m_product_code`,
		`CREATE TABLE IF NOT EXISTS transactions`,
		`CREATE TABLE IF NOT EXISTS transaction_details`,
	} {
		mock.ExpectExec(regexp.QuoteMeta(fragment)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	Run(sqlx.NewDb(db, "pgx"))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
