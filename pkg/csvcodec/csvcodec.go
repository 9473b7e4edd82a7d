// Package csvcodec serializa o livro-caixa e o relatório agregado em CSV e
// interpreta backups CSV de volta em payloads candidatos.
package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

// Colunas do backup completo, nesta ordem
const (
	ColOrderID   = "orderId"
	ColTimestamp = "timestamp"
	ColProduct   = "product"
	ColQuantity  = "quantity"
	ColPrice     = "price"
	ColCost      = "cost"
	ColNote      = "note"
	ColDone      = "done"
)

// SalesHeader é o cabeçalho do arquivo recent_<data>.csv
var SalesHeader = []string{ColOrderID, ColTimestamp, ColProduct, ColQuantity, ColPrice, ColCost, ColNote, ColDone}

// SummaryHeader é o cabeçalho do arquivo report_<data>.csv
var SummaryHeader = []string{"product", "quantity", "revenue", "profit"}

// headerAliases aceita também os nomes de coluna gravados pela versão anterior do sistema
var headerAliases = map[string]string{
	"orderid":   ColOrderID,
	"order_id":  ColOrderID,
	"timestamp": ColTimestamp,
	"time":      ColTimestamp,
	"ts":        ColTimestamp,
	"product":   ColProduct,
	"quantity":  ColQuantity,
	"num":       ColQuantity,
	"qty":       ColQuantity,
	"price":     ColPrice,
	"cost":      ColCost,
	"note":      ColNote,
	"done":      ColDone,
}

// Candidate é uma linha do backup já interpretada. Err != nil indica linha inadmissível.
type Candidate struct {
	Line  int
	Input domain.SaleInput
	Err   error
}

// WriteSales grava o cabeçalho e uma linha por venda
func WriteSales(w io.Writer, sales []domain.Sale) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SalesHeader); err != nil {
		return err
	}

	for _, s := range sales {
		record := []string{
			s.OrderID,
			utils.FormatInstant(s.Timestamp),
			s.Product,
			strconv.Itoa(s.Quantity),
			s.Price.String(),
			s.Cost.String(),
			s.Note,
			strconv.FormatBool(s.Done),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaries grava o relatório agregado por produto
func WriteSummaries(w io.Writer, rows []domain.ProductSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{r.Product, strconv.Itoa(r.Quantity), r.Revenue.String(), r.Profit.String()}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadSales interpreta um backup completo. As colunas são localizadas pelo
// nome do cabeçalho; linhas sem product/price/cost válidos voltam com Err.
// Timestamps sem fuso são interpretados em loc.
func ReadSales(r io.Reader, loc *time.Location) ([]Candidate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return []Candidate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho do CSV: %w", err)
	}

	index := indexHeader(header)

	candidates := make([]Candidate, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha do CSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		candidates = append(candidates, parseRecord(line, record, index, loc))
	}

	return candidates, nil
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			if _, seen := index[canonical]; !seen {
				index[canonical] = i
			}
		}
	}
	return index
}

func parseRecord(line int, record []string, index map[string]int, loc *time.Location) Candidate {
	field := func(col string) (string, bool) {
		i, ok := index[col]
		if !ok {
			return "", false
		}
		if i >= len(record) {
			return "", true
		}
		return record[i], true
	}

	candidate := Candidate{Line: line}

	product, _ := field(ColProduct)
	if strings.TrimSpace(product) == "" {
		candidate.Err = domain.NewInvalidInput("product", "missing")
		return candidate
	}

	price, err := parseAmount(field(ColPrice))
	if err != nil {
		candidate.Err = domain.NewInvalidInput("price", err.Error())
		return candidate
	}

	cost, err := parseAmount(field(ColCost))
	if err != nil {
		candidate.Err = domain.NewInvalidInput("cost", err.Error())
		return candidate
	}

	quantity := 1
	if raw, ok := field(ColQuantity); ok {
		quantity, err = parseQuantity(raw)
		if err != nil {
			candidate.Err = domain.NewInvalidInput("quantity", err.Error())
			return candidate
		}
	}

	timestamp := ""
	if raw, _ := field(ColTimestamp); strings.TrimSpace(raw) != "" {
		ts, err := utils.ParseInstant(raw, loc)
		if err != nil {
			candidate.Err = domain.NewInvalidInput("timestamp", err.Error())
			return candidate
		}
		timestamp = utils.FormatInstant(ts)
	}

	note, _ := field(ColNote)
	orderID, _ := field(ColOrderID)
	done, _ := field(ColDone)

	candidate.Input = domain.SaleInput{
		Product:   strings.TrimSpace(product),
		Price:     price,
		Cost:      cost,
		Quantity:  quantity,
		Timestamp: timestamp,
		Note:      note,
		OrderID:   strings.TrimSpace(orderID),
		Done:      strings.EqualFold(strings.TrimSpace(done), "true"),
	}

	return candidate
}

func parseAmount(raw string, present bool) (decimal.Decimal, error) {
	if !present {
		return decimal.Zero, fmt.Errorf("column missing")
	}
	return decimal.NewFromString(strings.TrimSpace(raw))
}

func parseQuantity(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	return int(d.IntPart()), nil
}
