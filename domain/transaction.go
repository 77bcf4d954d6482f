package domain

// Transaction is one purchase event recorded at the register.
type Transaction struct {
	ID          int64  `db:"trd_id" json:"trd_id"`
	TotalAmount int64  `db:"total_amt" json:"total_amt"`
	EmployeeCd  string `db:"emp_cd" json:"emp_cd"`
	StoreCd     string `db:"store_cd" json:"store_cd"`
	PosNo       string `db:"pos_no" json:"pos_no"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

// TransactionDetail is one line item within a transaction. Product code,
// name and price are snapshotted so a later price change cannot rewrite
// the history of a past sale.
type TransactionDetail struct {
	TransactionID int64  `db:"trd_id" json:"trd_id"`
	DetailID      int64  `db:"dtl_id" json:"dtl_id"`
	ProductID     int64  `db:"prd_id" json:"prd_id"`
	ProductCode   string `db:"prd_code" json:"prd_code"`
	ProductName   string `db:"prd_name" json:"prd_name"`
	ProductPrice  int64  `db:"prd_price" json:"prd_price"`
	Quantity      int64  `db:"quantity" json:"quantity"`
}
