package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// LoadProducts ingests the CSV into the product master, ignoring codes that
// are already present. The file layout is code,name,price with a header row.
// Products are maintained out of band; this is that out-of-band path for
// development and fresh deployments, so a missing file is not fatal.
func LoadProducts(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load product catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read product header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start product transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT INTO m_product (code, name, price) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`)
	if err != nil {
		log.Printf("unable to prepare product insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read product row: %v", err)
			continue
		}
		if len(record) < 3 {
			continue
		}
		code := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		price, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)

		if code == "" || name == "" || err != nil {
			continue
		}

		if _, err := stmt.Exec(code, name, price); err != nil {
			log.Printf("unable to insert product %s: %v", code, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit product seed: %v", err)
	} else {
		log.Printf("seeded product catalog with %d rows", rows)
	}
}
