package csvcodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
)

func TestWriteSales(t *testing.T) {
	sales := []domain.Sale{
		{
			ID:        1,
			Timestamp: time.Date(2024, 5, 10, 8, 47, 13, 0, time.UTC),
			Product:   "Tea_Hot",
			Quantity:  2,
			Price:     decimal.NewFromInt(350),
			Cost:      decimal.NewFromInt(180),
			OrderID:   "7",
		},
		{
			ID:        2,
			Timestamp: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
			Product:   "Lemonade",
			Quantity:  1,
			Price:     decimal.RequireFromString("300.5"),
			Cost:      decimal.Zero,
			Note:      "say \"hi\", ok\nsecond line",
			Done:      true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSales(&buf, sales))

	expected := "orderId,timestamp,product,quantity,price,cost,note,done\n" +
		"7,2024-05-10T08:47:13.000Z,Tea_Hot,2,350,180,,false\n" +
		",2024-05-10T09:00:00.000Z,Lemonade,1,300.5,0,\"say \"\"hi\"\", ok\nsecond line\",true\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteSummaries(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummaries(&buf, []domain.ProductSummary{
		{Product: "Tea, Hot", Quantity: 3, Revenue: decimal.NewFromInt(1050), Profit: decimal.NewFromInt(510)},
	})

	require.NoError(t, err)
	assert.Equal(t, "product,quantity,revenue,profit\n\"Tea, Hot\",3,1050,510\n", buf.String())
}

func TestReadSales_RoundTrip(t *testing.T) {
	original := []domain.Sale{
		{
			Timestamp: time.Date(2024, 5, 10, 8, 47, 13, 250_000_000, time.UTC),
			Product:   "Tea_Hot",
			Quantity:  2,
			Price:     decimal.NewFromInt(350),
			Cost:      decimal.NewFromInt(180),
			Note:      "quote \" and, comma\nnewline",
			OrderID:   "7",
			Done:      true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSales(&buf, original))

	candidates, err := ReadSales(&buf, time.UTC)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	require.NoError(t, c.Err)
	assert.Equal(t, "Tea_Hot", c.Input.Product)
	assert.Equal(t, 2, c.Input.Quantity)
	assert.True(t, c.Input.Price.Equal(decimal.NewFromInt(350)))
	assert.True(t, c.Input.Cost.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, "2024-05-10T08:47:13.250Z", c.Input.Timestamp)
	assert.Equal(t, "quote \" and, comma\nnewline", c.Input.Note)
	assert.Equal(t, "7", c.Input.OrderID)
	assert.True(t, c.Input.Done)
}

func TestReadSales_LegacyHeaderAndColumnOrder(t *testing.T) {
	data := "\ufeffdone,Product,num,Time,cost,price,orderId,note\r\n" +
		"false,Lemonade,3,2024-05-10T10:15:00.000Z,150,300,9,\r\n" +
		"\r\n" +
		"TRUE,Coffee,1,2024-05-10T10:16:00.000Z,100,250,,\"iced\"\r\n"

	candidates, err := ReadSales(strings.NewReader(data), time.UTC)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.NoError(t, candidates[0].Err)
	assert.Equal(t, "Lemonade", candidates[0].Input.Product)
	assert.Equal(t, 3, candidates[0].Input.Quantity)
	assert.Equal(t, "9", candidates[0].Input.OrderID)
	assert.False(t, candidates[0].Input.Done)

	assert.NoError(t, candidates[1].Err)
	assert.Equal(t, "Coffee", candidates[1].Input.Product)
	assert.Equal(t, "iced", candidates[1].Input.Note)
	assert.True(t, candidates[1].Input.Done)
}

func TestReadSales_InadmissibleRows(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantField string
	}{
		{
			name:      "Produto vazio",
			data:      "product,price,cost\n,100,50\n",
			wantField: "product",
		},
		{
			name:      "Preço não numérico",
			data:      "product,price,cost\nTea,abc,50\n",
			wantField: "price",
		},
		{
			name:      "Custo vazio",
			data:      "product,price,cost\nTea,100,\n",
			wantField: "cost",
		},
		{
			name:      "Coluna de custo ausente",
			data:      "product,price\nTea,100\n",
			wantField: "cost",
		},
		{
			name:      "Quantidade fracionária",
			data:      "product,price,cost,quantity\nTea,100,50,1.5\n",
			wantField: "quantity",
		},
		{
			name:      "Timestamp inválido",
			data:      "product,price,cost,timestamp\nTea,100,50,yesterday\n",
			wantField: "timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := ReadSales(strings.NewReader(tt.data), time.UTC)
			require.NoError(t, err)
			require.Len(t, candidates, 1)

			require.Error(t, candidates[0].Err)
			assert.True(t, errors.Is(candidates[0].Err, domain.ErrInvalidInput))

			var ledgerErr *domain.LedgerError
			require.True(t, errors.As(candidates[0].Err, &ledgerErr))
			assert.Equal(t, tt.wantField, ledgerErr.Field)
		})
	}
}

func TestReadSales_QuoteHandling(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantNote string
	}{
		{
			name:     "Aspas dentro de campo sem aspas são literais",
			data:     "product,price,cost,note\nTea,1,0,a\"b,c\"d\n",
			wantNote: "a\"b",
		},
		{
			name:     "Aspas duplicadas dentro de campo entre aspas",
			data:     "product,price,cost,note\nTea,1,0,\"say \"\"hi\"\", ok\"\n",
			wantNote: "say \"hi\", ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := ReadSales(strings.NewReader(tt.data), time.UTC)
			require.NoError(t, err)
			require.Len(t, candidates, 1)

			require.NoError(t, candidates[0].Err)
			assert.Equal(t, "Tea", candidates[0].Input.Product)
			assert.Equal(t, tt.wantNote, candidates[0].Input.Note)
		})
	}
}

func TestWriteSales_LeadingSpaceIsQuoted(t *testing.T) {
	sales := []domain.Sale{{
		Timestamp: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		Product:   "Tea",
		Quantity:  1,
		Price:     decimal.NewFromInt(1),
		Cost:      decimal.Zero,
		Note:      " lead",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteSales(&buf, sales))
	assert.Contains(t, buf.String(), ",1,0,\" lead\",false\n")

	candidates, err := ReadSales(&buf, time.UTC)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, " lead", candidates[0].Input.Note)
}

func TestReadSales_Defaults(t *testing.T) {
	candidates, err := ReadSales(strings.NewReader("product,price,cost\nTea,100,50\n"), time.UTC)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.NoError(t, candidates[0].Err)
	assert.Equal(t, 1, candidates[0].Input.Quantity, "sem coluna de quantidade assume 1")
	assert.Empty(t, candidates[0].Input.Timestamp)
	assert.Equal(t, 2, candidates[0].Line)
}

func TestReadSales_Empty(t *testing.T) {
	candidates, err := ReadSales(strings.NewReader(""), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = ReadSales(strings.NewReader("orderId,timestamp,product\n"), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
