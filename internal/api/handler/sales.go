package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
	"github.com/vfg2006/pos-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/pos-ledger-api/pkg/log"
)

// createSaleRequest aceita order_id e o legado orderId
type createSaleRequest struct {
	Product       string           `json:"product"`
	Price         *decimal.Decimal `json:"price"`
	Cost          *decimal.Decimal `json:"cost"`
	Quantity      *int             `json:"quantity"`
	Timestamp     string           `json:"timestamp"`
	Note          string           `json:"note"`
	OrderID       string           `json:"order_id"`
	LegacyOrderID string           `json:"orderId"`
	Done          bool             `json:"done"`
}

func (req createSaleRequest) toInput() (domain.SaleInput, error) {
	if req.Price == nil {
		return domain.SaleInput{}, domain.NewInvalidInput("price", "is required")
	}

	input := domain.SaleInput{
		Product:   req.Product,
		Price:     *req.Price,
		Quantity:  1,
		Timestamp: req.Timestamp,
		Note:      req.Note,
		OrderID:   req.OrderID,
		Done:      req.Done,
	}

	if req.Cost != nil {
		input.Cost = *req.Cost
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}
	if input.OrderID == "" {
		input.OrderID = req.LegacyOrderID
	}

	return input, nil
}

func CreateSale(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req createSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("sales: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		input, err := req.toInput()
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		sale, err := service.Create(input)
		if err != nil {
			logger.WithError(err).Warn("sales: venda rejeitada")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sale)
	})
}

// ListSales retorna as vendas mais recentes. limit ausente, inválido ou <= 0 usa defaultLimit.
func ListSales(service selling.Seller, defaultLimit int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 {
			limit = defaultLimit
		}

		sales := service.List(limit)
		if sales == nil {
			sales = []domain.Sale{}
		}

		writeJSON(w, http.StatusOK, sales)
	})
}

func DeleteSale(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rawID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			logger.WithField("sale_id", rawID).Warn("sales: id inválido")
			apiErrors.WriteFromError(w, domain.NewInvalidInput("id", "must be an integer"))
			return
		}

		if err := service.Delete(id); err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":      id,
			"deleted": true,
		})
	})
}
