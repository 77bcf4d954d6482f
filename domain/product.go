package domain

// Product is one row of the product master. Products are maintained out of
// band (seeded or managed elsewhere); this service only reads them.
type Product struct {
	ID    int64  `db:"prd_id" json:"prd_id"`
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Price int64  `db:"price" json:"price"`
}
