package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"retailpos/m/domain"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db      *sqlx.DB
	origins []string
}

// New constructs a Handler. origins is the list of front-end origins
// allowed to call the API cross-origin.
func New(db *sqlx.DB, origins []string) *Handler {
	return &Handler{db: db, origins: origins}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Post("/search_product", h.searchProduct)
	r.Post("/purchase", h.purchase)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Product search

type productSearchRequest struct {
	Code string `json:"code"`
}

type productSearchResponse struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func (h *Handler) searchProduct(w http.ResponseWriter, r *http.Request) {
	var req productSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var product domain.Product
	err := h.db.Get(&product, `SELECT prd_id, code, name, price FROM m_product WHERE code = $1`, req.Code)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to search product")
		return
	}

	respondJSON(w, http.StatusOK, productSearchResponse{Name: product.Name, Price: product.Price})
}

// Purchase

type purchaseItemRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int64  `json:"quantity"`
}

type purchaseRequest struct {
	EmpCd   string                `json:"emp_cd"`
	StoreCd string                `json:"store_cd"`
	PosNo   string                `json:"pos_no"`
	Items   []purchaseItemRequest `json:"items"`
}

type purchasedItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Total    int64  `json:"total"`
}

type purchaseResponse struct {
	Message        string          `json:"message"`
	TotalAmount    int64           `json:"total_amount"`
	PurchasedItems []purchasedItem `json:"purchased_items"`
}

// purchase records one transaction and one snapshot detail row per cart
// line. The whole sequence runs in a single database transaction committed
// at the end, so an unresolvable product code leaves no partial state.
func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("quantity for product %s must be positive", item.ProductCode))
			return
		}
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	var trdID int64
	err = tx.QueryRowx(`INSERT INTO transactions (total_amt, emp_cd, store_cd, pos_no) VALUES (0, $1, $2, $3) RETURNING trd_id`,
		req.EmpCd, req.StoreCd, req.PosNo).Scan(&trdID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create transaction")
		return
	}

	var totalAmt int64
	purchasedItems := make([]purchasedItem, 0, len(req.Items))

	for i, item := range req.Items {
		var product domain.Product
		err := tx.Get(&product, `SELECT prd_id, code, name, price FROM m_product WHERE code = $1`, item.ProductCode)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Product %s not found", item.ProductCode))
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to look up product")
			return
		}

		_, err = tx.Exec(`INSERT INTO transaction_details (trd_id, dtl_id, prd_id, prd_code, prd_name, prd_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			trdID, int64(i+1), product.ID, product.Code, product.Name, product.Price, item.Quantity)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to add transaction detail")
			return
		}

		lineTotal := product.Price * item.Quantity
		totalAmt += lineTotal
		purchasedItems = append(purchasedItems, purchasedItem{
			Name:     product.Name,
			Price:    product.Price,
			Quantity: item.Quantity,
			Total:    lineTotal,
		})
	}

	if _, err := tx.Exec(`UPDATE transactions SET total_amt = $1 WHERE trd_id = $2`, totalAmt, trdID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize transaction")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize transaction")
		return
	}

	respondJSON(w, http.StatusOK, purchaseResponse{
		Message:        "Purchase completed",
		TotalAmount:    totalAmt,
		PurchasedItems: purchasedItems,
	})
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}
