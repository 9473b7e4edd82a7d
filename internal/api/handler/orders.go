package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
	"github.com/vfg2006/pos-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/pos-ledger-api/pkg/log"
)

func ListOpenOrders(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orders := service.OpenOrders()
		if orders == nil {
			orders = []domain.OpenOrder{}
		}

		writeJSON(w, http.StatusOK, orders)
	})
}

// CompleteOrder marca todas as vendas do pedido como concluídas. Pedido
// desconhecido não é erro: responde updated = 0.
func CompleteOrder(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orderID := httprouter.ParamsFromContext(r.Context()).ByName("order_id")
		if orderID == "" {
			apiErrors.WriteFromError(w, domain.NewInvalidInput("order_id", "is required"))
			return
		}

		updated := service.CompleteOrder(orderID)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"order_id": orderID,
			"updated":  updated,
		}).Info("orders: pedido concluído")

		writeJSON(w, http.StatusOK, map[string]any{
			"order_id": orderID,
			"updated":  updated,
		})
	})
}
