package selling

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

type countingTrigger struct{ calls atomic.Int32 }

func (c *countingTrigger) TriggerBackup() { c.calls.Add(1) }

func input(product string, price, cost int64, qty int, orderID string) domain.SaleInput {
	return domain.SaleInput{
		Product:  product,
		Price:    decimal.NewFromInt(price),
		Cost:     decimal.NewFromInt(cost),
		Quantity: qty,
		OrderID:  orderID,
	}
}

func newTestService() (*Service, *countingTrigger) {
	trigger := &countingTrigger{}
	return NewService(repository.NewLedgerRepository(time.UTC), trigger, metrics.New()), trigger
}

func TestService_OpenOrdersScenario(t *testing.T) {
	service, trigger := newTestService()

	_, err := service.Create(input("Tea_Hot", 350, 180, 2, "7"))
	require.NoError(t, err)
	_, err = service.Create(input("Lemonade", 300, 150, 1, "7"))
	require.NoError(t, err)

	orders := service.OpenOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "7", orders[0].OrderID)
	assert.Equal(t, 3, orders[0].TotalQty)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.NewFromInt(1000)))
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Tea_Hot", orders[0].Items[0].Product)
	assert.Equal(t, "Lemonade", orders[0].Items[1].Product)

	assert.Equal(t, 2, service.CompleteOrder("7"))
	assert.Empty(t, service.OpenOrders())

	assert.Equal(t, 0, service.CompleteOrder("7"), "concluir de novo não altera nada")
	assert.Equal(t, int32(3), trigger.calls.Load(), "dois cadastros e uma conclusão efetiva")
}

func TestService_OpenOrdersGrouping(t *testing.T) {
	service, _ := newTestService()

	inputs := []domain.SaleInput{
		input("A", 100, 0, 1, "9"),
		input("B", 200, 0, 1, ""),
		input("C", 300, 0, 2, "8"),
		input("D", 50, 0, 1, "9"),
	}
	done := input("E", 999, 0, 1, "8")
	done.Done = true
	inputs = append(inputs, done)

	for _, in := range inputs {
		_, err := service.Create(in)
		require.NoError(t, err)
	}

	orders := service.OpenOrders()
	require.Len(t, orders, 2)

	assert.Equal(t, "9", orders[0].OrderID, "ordem do primeiro item encontrado")
	assert.Equal(t, 2, orders[0].TotalQty)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.NewFromInt(150)))

	assert.Equal(t, "8", orders[1].OrderID)
	assert.Equal(t, 2, orders[1].TotalQty, "item já concluído não entra no pedido")
	assert.True(t, orders[1].TotalAmount.Equal(decimal.NewFromInt(600)))
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name         string
		input        domain.SaleInput
		wantErr      bool
		wantTriggers int32
	}{
		{
			name:         "Venda válida dispara backup",
			input:        input("Tea_Hot", 350, 180, 1, ""),
			wantTriggers: 1,
		},
		{
			name:         "Quantidade zero não altera o livro-caixa nem dispara backup",
			input:        input("Tea_Hot", 350, 180, 0, ""),
			wantErr:      true,
			wantTriggers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, trigger := newTestService()

			sale, err := service.Create(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, sale)
				assert.Empty(t, service.List(0))
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), sale.ID)
				assert.Len(t, service.List(0), 1)
			}
			assert.Equal(t, tt.wantTriggers, trigger.calls.Load())
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	trigger := &countingTrigger{}
	service := NewService(mockLedger, trigger, nil)

	t.Run("Venda inexistente", func(t *testing.T) {
		mockLedger.EXPECT().RemoveByID(int64(42)).Return(false)

		err := service.Delete(42)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, int32(0), trigger.calls.Load())
	})

	t.Run("Venda removida dispara backup", func(t *testing.T) {
		mockLedger.EXPECT().RemoveByID(int64(1)).Return(true)
		mockLedger.EXPECT().Len().Return(0)

		require.NoError(t, service.Delete(1))
		assert.Equal(t, int32(1), trigger.calls.Load())
	})
}

func TestService_ListDelegatesToLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	service := NewService(mockLedger, nil, nil)

	expected := []domain.Sale{{ID: 2}, {ID: 1}}
	mockLedger.EXPECT().List(150).Return(expected)

	assert.Equal(t, expected, service.List(150))
}

func TestService_NilTrigger(t *testing.T) {
	service := NewService(repository.NewLedgerRepository(time.UTC), nil, nil)

	assert.NotPanics(t, func() {
		_, err := service.Create(input("A", 1, 0, 1, "1"))
		require.NoError(t, err)
		service.CompleteOrder("1")
	})
}
