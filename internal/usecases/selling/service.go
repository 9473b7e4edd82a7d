// Package selling registra vendas no livro-caixa e mantém a visão de pedidos abertos
package selling

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/pkg/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// BackupTrigger agenda um backup assíncrono após uma mutação.
// Nunca bloqueia nem falha a operação que o disparou.
type BackupTrigger interface {
	TriggerBackup()
}

// Seller define as operações sobre vendas e pedidos
type Seller interface {
	Create(input domain.SaleInput) (*domain.Sale, error)
	List(limit int) []domain.Sale
	Delete(id int64) error
	OpenOrders() []domain.OpenOrder
	CompleteOrder(orderID string) int
}

type Service struct {
	ledger  repository.LedgerRepository
	backup  BackupTrigger
	metrics *metrics.Metrics
}

// NewService cria o serviço de vendas. backup e m podem ser nil.
func NewService(ledger repository.LedgerRepository, backup BackupTrigger, m *metrics.Metrics) *Service {
	return &Service{
		ledger:  ledger,
		backup:  backup,
		metrics: m,
	}
}

func (s *Service) Create(input domain.SaleInput) (*domain.Sale, error) {
	sale, err := s.ledger.Append(input)
	if err != nil {
		logrus.WithError(err).WithField("product", input.Product).Warn("Venda rejeitada pelo livro-caixa")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sale_id":  sale.ID,
		"product":  sale.Product,
		"quantity": sale.Quantity,
		"order_id": sale.OrderID,
	}).Info("Venda registrada")

	s.metrics.SaleCreated(s.ledger.Len())
	s.triggerBackup()

	return sale, nil
}

func (s *Service) List(limit int) []domain.Sale {
	return s.ledger.List(limit)
}

func (s *Service) Delete(id int64) error {
	if !s.ledger.RemoveByID(id) {
		return &domain.LedgerError{Err: domain.ErrNotFound, Field: "id"}
	}

	logrus.WithField("sale_id", id).Info("Venda removida")

	s.metrics.SaleDeleted(s.ledger.Len())
	s.triggerBackup()

	return nil
}

// OpenOrders agrupa por orderId as vendas ainda não concluídas. Vendas sem
// orderId são ignoradas; os pedidos saem na ordem do primeiro item encontrado.
func (s *Service) OpenOrders() []domain.OpenOrder {
	index := make(map[string]int)
	orders := make([]domain.OpenOrder, 0)

	for _, sale := range s.ledger.All() {
		if sale.OrderID == "" || sale.Done {
			continue
		}

		i, ok := index[sale.OrderID]
		if !ok {
			i = len(orders)
			index[sale.OrderID] = i
			orders = append(orders, domain.OpenOrder{
				OrderID:     sale.OrderID,
				TotalAmount: decimal.Zero,
				Items:       make([]domain.OrderItem, 0, 1),
			})
		}

		order := &orders[i]
		order.TotalQty += sale.Quantity
		order.TotalAmount = order.TotalAmount.Add(sale.Revenue())
		order.Items = append(order.Items, domain.OrderItem{
			ID:        sale.ID,
			Timestamp: sale.Timestamp,
			Product:   sale.Product,
			Quantity:  sale.Quantity,
			Price:     sale.Price,
		})
	}

	return orders
}

// CompleteOrder marca como concluídos os itens abertos do pedido e retorna
// quantos foram alterados. Repetir a chamada retorna 0.
func (s *Service) CompleteOrder(orderID string) int {
	updated := s.ledger.MarkDoneByOrderID(orderID)

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"updated":  updated,
	}).Info("Pedido concluído")

	if updated > 0 {
		s.metrics.OrderCompleted(updated)
		s.triggerBackup()
	}

	return updated
}

func (s *Service) triggerBackup() {
	if s.backup == nil {
		return
	}
	s.backup.TriggerBackup()
}
