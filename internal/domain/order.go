package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenOrder representa um pedido com pelo menos um item ainda não concluído
type OpenOrder struct {
	OrderID     string          `json:"order_id"`
	TotalQty    int             `json:"total_qty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items"`
}

// OrderItem é o detalhe de cada venda dentro de um pedido aberto
type OrderItem struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
