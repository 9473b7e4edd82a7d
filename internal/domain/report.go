package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportBucket agrega as vendas de um produto dentro de uma janela de tempo
type ReportBucket struct {
	BucketStart time.Time       `json:"bucket_start"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
}

// ReportFilters define a largura do bucket e o intervalo [Start, End) do relatório
type ReportFilters struct {
	BucketMinutes int
	Start         *time.Time
	End           *time.Time
}

// ProductSummary é a linha do relatório agregado gravado no backup
type ProductSummary struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}
