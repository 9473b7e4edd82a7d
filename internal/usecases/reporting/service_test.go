package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 5, 10, hour, minute, second, 0, time.UTC)
}

func sale(id int64, ts time.Time, product string, qty int, price, cost int64) domain.Sale {
	return domain.Sale{
		ID:        id,
		Timestamp: ts,
		Product:   product,
		Quantity:  qty,
		Price:     decimal.NewFromInt(price),
		Cost:      decimal.NewFromInt(cost),
	}
}

func TestService_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	service := NewService(mockLedger, time.UTC)

	sales := []domain.Sale{
		sale(1, at(8, 47, 13), "Tea_Hot", 2, 350, 180),
		sale(2, at(8, 31, 0), "Tea_Hot", 1, 350, 180),
		sale(3, at(8, 30, 0), "Lemonade", 1, 300, 150),
		sale(4, at(9, 5, 0), "Coffee", 3, 250, 100),
		sale(5, at(8, 10, 0), "Lemonade", 2, 300, 150),
	}

	start := at(8, 30, 0)
	end := at(9, 0, 0)

	tests := []struct {
		name     string
		filters  domain.ReportFilters
		validate func(t *testing.T, buckets []domain.ReportBucket)
	}{
		{
			name:    "Sem limites agrega tudo em buckets de 30 minutos",
			filters: domain.ReportFilters{BucketMinutes: 30},
			validate: func(t *testing.T, buckets []domain.ReportBucket) {
				require.Len(t, buckets, 4)

				assert.True(t, buckets[0].BucketStart.Equal(at(8, 0, 0)))
				assert.Equal(t, "Lemonade", buckets[0].Product)
				assert.Equal(t, 2, buckets[0].Quantity)

				assert.True(t, buckets[1].BucketStart.Equal(at(8, 30, 0)))
				assert.Equal(t, "Lemonade", buckets[1].Product)

				assert.True(t, buckets[2].BucketStart.Equal(at(8, 30, 0)))
				assert.Equal(t, "Tea_Hot", buckets[2].Product)
				assert.Equal(t, 3, buckets[2].Quantity)
				assert.True(t, buckets[2].Revenue.Equal(decimal.NewFromInt(1050)))
				assert.True(t, buckets[2].Profit.Equal(decimal.NewFromInt(510)))

				assert.True(t, buckets[3].BucketStart.Equal(at(9, 0, 0)))
				assert.Equal(t, "Coffee", buckets[3].Product)
			},
		},
		{
			name:    "Intervalo é fechado no início e aberto no fim",
			filters: domain.ReportFilters{BucketMinutes: 30, Start: &start, End: &end},
			validate: func(t *testing.T, buckets []domain.ReportBucket) {
				require.Len(t, buckets, 2)
				assert.Equal(t, "Lemonade", buckets[0].Product)
				assert.Equal(t, "Tea_Hot", buckets[1].Product)
			},
		},
		{
			name:    "Largura inválida é limitada a 1 minuto",
			filters: domain.ReportFilters{BucketMinutes: 0},
			validate: func(t *testing.T, buckets []domain.ReportBucket) {
				require.Len(t, buckets, 5)
				assert.True(t, buckets[len(buckets)-1].BucketStart.Equal(at(9, 5, 0)))
			},
		},
		{
			name:    "Larguras acima de 60 minutos apenas zeram os minutos",
			filters: domain.ReportFilters{BucketMinutes: 1440},
			validate: func(t *testing.T, buckets []domain.ReportBucket) {
				require.Len(t, buckets, 3)
				assert.Equal(t, []string{"Lemonade", "Tea_Hot", "Coffee"},
					[]string{buckets[0].Product, buckets[1].Product, buckets[2].Product})
				assert.True(t, buckets[0].BucketStart.Equal(at(8, 0, 0)))
				assert.True(t, buckets[2].BucketStart.Equal(at(9, 0, 0)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLedger.EXPECT().All().Return(sales)
			tt.validate(t, service.Report(tt.filters))
		})
	}
}

func TestService_ReportRevenueMatchesLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	service := NewService(mockLedger, time.UTC)

	sales := make([]domain.Sale, 0, 200)
	expected := decimal.Zero
	for i := 0; i < 200; i++ {
		s := domain.Sale{
			ID:        int64(i + 1),
			Timestamp: at(0, 0, 0).Add(time.Duration(i*7) * time.Minute),
			Product:   []string{"A", "B", "C"}[i%3],
			Quantity:  i%4 + 1,
			Price:     decimal.RequireFromString("0.10").Add(decimal.NewFromInt(int64(i))),
			Cost:      decimal.RequireFromString("0.05"),
		}
		sales = append(sales, s)
		expected = expected.Add(s.Revenue())
	}

	for _, width := range []int{1, 7, 15, 30, 60, 1440} {
		mockLedger.EXPECT().All().Return(sales)

		total := decimal.Zero
		for _, bucket := range service.Report(domain.ReportFilters{BucketMinutes: width}) {
			total = total.Add(bucket.Revenue)
		}

		assert.True(t, expected.Equal(total), "largura %d: esperado %s, obtido %s", width, expected, total)
	}
}

func TestService_ReportUsesConfiguredLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := time.FixedZone("IST", 5*3600+30*60)
	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	service := NewService(mockLedger, loc)

	// 08:10 UTC = 13:40 no fuso +05:30
	mockLedger.EXPECT().All().Return([]domain.Sale{sale(1, at(8, 10, 0), "A", 1, 100, 0)})

	buckets := service.Report(domain.ReportFilters{BucketMinutes: 60})
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].BucketStart.Equal(at(7, 30, 0)), "bucket deve começar às 13:00 locais")
}

func TestService_ProductSummaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	service := NewService(mockLedger, time.UTC)

	sales := []domain.Sale{
		sale(1, at(7, 59, 0), "Tea_Hot", 5, 350, 180),
		sale(2, at(8, 15, 0), "Tea_Hot", 2, 350, 180),
		sale(3, at(9, 45, 0), "Tea_Hot", 1, 350, 180),
		sale(4, at(8, 40, 0), "Lemonade", 4, 300, 150),
		sale(5, at(10, 0, 0), "Coffee", 10, 250, 100),
		sale(6, at(9, 0, 0), "Water", 7, 100, 20),
	}

	tests := []struct {
		name      string
		startHour int
		endHour   int
		want      []domain.ProductSummary
	}{
		{
			name:      "Filtro [8, 10) ordenado por receita",
			startHour: 8,
			endHour:   10,
			want: []domain.ProductSummary{
				{Product: "Lemonade", Quantity: 4, Revenue: decimal.NewFromInt(1200), Profit: decimal.NewFromInt(600)},
				{Product: "Tea_Hot", Quantity: 3, Revenue: decimal.NewFromInt(1050), Profit: decimal.NewFromInt(510)},
				{Product: "Water", Quantity: 7, Revenue: decimal.NewFromInt(700), Profit: decimal.NewFromInt(560)},
			},
		},
		{
			name:      "Dia inteiro",
			startHour: 0,
			endHour:   24,
			want: []domain.ProductSummary{
				{Product: "Tea_Hot", Quantity: 8, Revenue: decimal.NewFromInt(2800), Profit: decimal.NewFromInt(1360)},
				{Product: "Coffee", Quantity: 10, Revenue: decimal.NewFromInt(2500), Profit: decimal.NewFromInt(1500)},
				{Product: "Lemonade", Quantity: 4, Revenue: decimal.NewFromInt(1200), Profit: decimal.NewFromInt(600)},
				{Product: "Water", Quantity: 7, Revenue: decimal.NewFromInt(700), Profit: decimal.NewFromInt(560)},
			},
		},
		{
			name:      "Janela vazia",
			startHour: 12,
			endHour:   12,
			want:      []domain.ProductSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLedger.EXPECT().All().Return(sales)

			got := service.ProductSummaries(domain.ReportFilters{BucketMinutes: 30}, tt.startHour, tt.endHour)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Product, got[i].Product)
				assert.Equal(t, tt.want[i].Quantity, got[i].Quantity)
				assert.True(t, tt.want[i].Revenue.Equal(got[i].Revenue), "%s revenue %s", got[i].Product, got[i].Revenue)
				assert.True(t, tt.want[i].Profit.Equal(got[i].Profit), "%s profit %s", got[i].Product, got[i].Profit)
			}
		})
	}
}
