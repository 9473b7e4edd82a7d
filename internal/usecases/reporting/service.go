// Package reporting agrega o livro-caixa em buckets de tempo por produto
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Reporter calcula relatórios a partir do livro-caixa
type Reporter interface {
	// Report agrega as vendas em [Start, End) por (início do bucket, produto),
	// ordenado pelo início do bucket e depois pelo produto
	Report(filters domain.ReportFilters) []domain.ReportBucket

	// ProductSummaries soma os buckets cujo horário local está em
	// [startHour, endHour) por produto, da maior para a menor receita
	ProductSummaries(filters domain.ReportFilters, startHour, endHour int) []domain.ProductSummary

	// SummarizeSales é ProductSummaries sobre um snapshot já lido do livro-caixa
	SummarizeSales(sales []domain.Sale, filters domain.ReportFilters, startHour, endHour int) []domain.ProductSummary
}

type Service struct {
	ledger repository.LedgerRepository
	loc    *time.Location
}

// NewService cria o serviço de relatórios. loc define o fuso usado para
// arredondar os buckets e aplicar o filtro de horário.
func NewService(ledger repository.LedgerRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		ledger: ledger,
		loc:    loc,
	}
}

type bucketKey struct {
	start   int64
	product string
}

func (s *Service) Report(filters domain.ReportFilters) []domain.ReportBucket {
	return s.aggregate(s.ledger.All(), filters)
}

func (s *Service) aggregate(sales []domain.Sale, filters domain.ReportFilters) []domain.ReportBucket {
	width := utils.ClampBucketMinutes(filters.BucketMinutes)

	buckets := make(map[bucketKey]*domain.ReportBucket)
	for _, sale := range sales {
		if filters.Start != nil && sale.Timestamp.Before(*filters.Start) {
			continue
		}
		if filters.End != nil && !sale.Timestamp.Before(*filters.End) {
			continue
		}

		start := utils.BucketStart(sale.Timestamp.In(s.loc), width)
		key := bucketKey{start: start.UnixNano(), product: sale.Product}

		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.ReportBucket{
				BucketStart: start,
				Product:     sale.Product,
				Revenue:     decimal.Zero,
				Profit:      decimal.Zero,
			}
			buckets[key] = bucket
		}

		bucket.Quantity += sale.Quantity
		bucket.Revenue = bucket.Revenue.Add(sale.Revenue())
		bucket.Profit = bucket.Profit.Add(sale.Profit())
	}

	result := make([]domain.ReportBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].BucketStart.Equal(result[j].BucketStart) {
			return result[i].BucketStart.Before(result[j].BucketStart)
		}
		return result[i].Product < result[j].Product
	})

	return result
}

func (s *Service) ProductSummaries(filters domain.ReportFilters, startHour, endHour int) []domain.ProductSummary {
	return s.SummarizeSales(s.ledger.All(), filters, startHour, endHour)
}

func (s *Service) SummarizeSales(sales []domain.Sale, filters domain.ReportFilters, startHour, endHour int) []domain.ProductSummary {
	totals := make(map[string]*domain.ProductSummary)
	order := make([]string, 0)

	for _, bucket := range s.aggregate(sales, filters) {
		hour := bucket.BucketStart.In(s.loc).Hour()
		if hour < startHour || hour >= endHour {
			continue
		}

		summary, ok := totals[bucket.Product]
		if !ok {
			summary = &domain.ProductSummary{
				Product: bucket.Product,
				Revenue: decimal.Zero,
				Profit:  decimal.Zero,
			}
			totals[bucket.Product] = summary
			order = append(order, bucket.Product)
		}

		summary.Quantity += bucket.Quantity
		summary.Revenue = summary.Revenue.Add(bucket.Revenue)
		summary.Profit = summary.Profit.Add(bucket.Profit)
	}

	result := make([]domain.ProductSummary, 0, len(order))
	for _, product := range order {
		result = append(result, *totals[product])
	}

	sort.SliceStable(result, func(i, j int) bool {
		if cmp := result[i].Revenue.Cmp(result[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return result[i].Product < result[j].Product
	})

	return result
}
