// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa uma linha do livro-caixa (uma venda registrada no caixa)
type Sale struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Note      string          `json:"note,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
	Done      bool            `json:"done"`
}

// Revenue retorna price * quantity
func (s Sale) Revenue() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Profit retorna (price - cost) * quantity
func (s Sale) Profit() decimal.Decimal {
	return s.Price.Sub(s.Cost).Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// SaleInput é o payload aceito pelo livro-caixa para criar uma venda.
// Timestamp vazio significa "agora". O padrão de Quantity (1) é aplicado
// por quem monta o payload, o livro-caixa só aceita valores >= 1.
type SaleInput struct {
	Product   string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Quantity  int
	Timestamp string
	Note      string
	OrderID   string
	Done      bool
}
