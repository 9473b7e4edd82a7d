package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

//go:generate mockgen -source=ledger.go -destination=mocks/ledger_mock.go -package=mocks

// LedgerRepository é o livro-caixa em memória: a única fonte de estado do serviço.
// Todas as mutações passam por um único lock exclusivo; leituras devolvem cópias.
type LedgerRepository interface {
	Append(input domain.SaleInput) (*domain.Sale, error)
	List(limit int) []domain.Sale
	All() []domain.Sale
	RemoveByID(id int64) bool
	MarkDoneByOrderID(orderID string) int
	Len() int
	RunInTransaction(fn func(tx LedgerTx) error) error
}

// LedgerTx é a visão do livro-caixa dentro de RunInTransaction
type LedgerTx interface {
	All() []domain.Sale
	Append(input domain.SaleInput) (*domain.Sale, error)
}

type ledgerRepository struct {
	mu     sync.RWMutex
	sales  []domain.Sale
	nextID int64
	now    func() time.Time
	loc    *time.Location
}

// NewLedgerRepository cria um livro-caixa vazio. loc é o fuso usado para
// timestamps informados sem offset.
func NewLedgerRepository(loc *time.Location) LedgerRepository {
	return newLedgerRepository(loc, time.Now)
}

func newLedgerRepository(loc *time.Location, now func() time.Time) *ledgerRepository {
	if loc == nil {
		loc = time.Local
	}

	return &ledgerRepository{
		sales:  make([]domain.Sale, 0),
		nextID: 1,
		now:    now,
		loc:    loc,
	}
}

func (r *ledgerRepository) Append(input domain.SaleInput) (*domain.Sale, error) {
	sale, err := r.build(input)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.appendLocked(sale), nil
}

// build valida o payload fora do lock; o ID só é atribuído em appendLocked
func (r *ledgerRepository) build(input domain.SaleInput) (domain.Sale, error) {
	product := strings.TrimSpace(input.Product)
	if product == "" {
		return domain.Sale{}, domain.NewInvalidInput("product", "must not be empty")
	}
	if input.Quantity < 1 {
		return domain.Sale{}, domain.NewInvalidInput("quantity", "must be at least 1")
	}
	if input.Price.IsNegative() {
		return domain.Sale{}, domain.NewInvalidInput("price", "must not be negative")
	}
	if input.Cost.IsNegative() {
		return domain.Sale{}, domain.NewInvalidInput("cost", "must not be negative")
	}

	ts := r.now()
	if strings.TrimSpace(input.Timestamp) != "" {
		parsed, err := utils.ParseInstant(input.Timestamp, r.loc)
		if err != nil {
			return domain.Sale{}, domain.NewInvalidInput("timestamp", err.Error())
		}
		ts = parsed
	}

	return domain.Sale{
		Timestamp: ts,
		Product:   product,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Cost:      input.Cost,
		Note:      input.Note,
		OrderID:   strings.TrimSpace(input.OrderID),
		Done:      input.Done,
	}, nil
}

func (r *ledgerRepository) appendLocked(sale domain.Sale) *domain.Sale {
	sale.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, sale)

	created := sale
	return &created
}

// List retorna até limit vendas, da mais recente para a mais antiga.
// Empates de timestamp são desfeitos pelo ID decrescente; limit <= 0 retorna todas.
func (r *ledgerRepository) List(limit int) []domain.Sale {
	sales := r.All()

	sort.SliceStable(sales, func(i, j int) bool {
		if !sales[i].Timestamp.Equal(sales[j].Timestamp) {
			return sales[i].Timestamp.After(sales[j].Timestamp)
		}
		return sales[i].ID > sales[j].ID
	})

	if limit > 0 && limit < len(sales) {
		sales = sales[:limit]
	}

	return sales
}

// All retorna uma cópia de todas as vendas na ordem de inserção
func (r *ledgerRepository) All() []domain.Sale {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshotLocked()
}

func (r *ledgerRepository) snapshotLocked() []domain.Sale {
	out := make([]domain.Sale, len(r.sales))
	copy(out, r.sales)
	return out
}

func (r *ledgerRepository) RemoveByID(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sales {
		if r.sales[i].ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return true
		}
	}

	return false
}

// MarkDoneByOrderID marca como concluídas as vendas ainda abertas do pedido e
// retorna quantas foram alteradas
func (r *ledgerRepository) MarkDoneByOrderID(orderID string) int {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for i := range r.sales {
		if r.sales[i].OrderID == orderID && !r.sales[i].Done {
			r.sales[i].Done = true
			updated++
		}
	}

	return updated
}

func (r *ledgerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sales)
}

// RunInTransaction executa fn com o lock exclusivo do livro-caixa. As vendas
// adicionadas via tx só ficam visíveis se fn retornar nil; IDs consumidos por
// uma transação descartada não são reutilizados.
func (r *ledgerRepository) RunInTransaction(fn func(tx LedgerTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &ledgerTx{repo: r, base: r.snapshotLocked()}

	defer func() {
		if err := recover(); err != nil {
			tx.staged = nil
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	r.sales = append(r.sales, tx.staged...)
	return nil
}

type ledgerTx struct {
	repo   *ledgerRepository
	base   []domain.Sale
	staged []domain.Sale
}

func (tx *ledgerTx) All() []domain.Sale {
	out := make([]domain.Sale, 0, len(tx.base)+len(tx.staged))
	out = append(out, tx.base...)
	return append(out, tx.staged...)
}

func (tx *ledgerTx) Append(input domain.SaleInput) (*domain.Sale, error) {
	sale, err := tx.repo.build(input)
	if err != nil {
		return nil, err
	}

	sale.ID = tx.repo.nextID
	tx.repo.nextID++
	tx.staged = append(tx.staged, sale)

	created := sale
	return &created, nil
}
