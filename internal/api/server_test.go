package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository"
	"github.com/vfg2006/pos-ledger-api/infrastructure/storage"
	"github.com/vfg2006/pos-ledger-api/internal/config"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/internal/scheduler"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/archiving"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
	"github.com/vfg2006/pos-ledger-api/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testAPI struct {
	handler http.Handler
	sync    *scheduler.BackupSyncService
}

// newTestAPI monta a aplicação completa sobre um diretório de backups,
// como o processo faria a cada boot
func newTestAPI(t *testing.T, dir string) *testAPI {
	t.Helper()

	cfg := &config.Config{
		App:     config.App{Location: time.UTC},
		Server:  config.Server{AllowedOrigins: []string{"*"}},
		Ledger:  config.Ledger{ListDefaultLimit: 150},
		Backup:  config.Backup{Dir: dir, OnMutation: true, BucketMinutes: 30, EndHour: 24},
		Restore: config.Restore{Window: time.Minute},
	}

	m := metrics.New()
	ledger := repository.NewLedgerRepository(cfg.App.Location)
	reporter := reporting.NewService(ledger, cfg.App.Location)
	archiver := archiving.NewService(ledger, reporter, storage.NewFileBackupStore(dir), m, archiving.Config{
		Location:      cfg.App.Location,
		RestoreWindow: cfg.Restore.Window,
		BucketMinutes: cfg.Backup.BucketMinutes,
		EndHour:       cfg.Backup.EndHour,
	})
	backupSync := scheduler.NewBackupSyncService(archiver, cfg)
	seller := selling.NewService(ledger, backupSync, m)

	api := &testAPI{
		handler: NewHandler(cfg, seller, reporter, archiver, backupSync, m),
		sync:    backupSync,
	}
	t.Cleanup(backupSync.Wait)

	return api
}

func (a *testAPI) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_SaleToRestoreFlow(t *testing.T) {
	dir := t.TempDir()
	app := newTestAPI(t, dir)

	rec := app.do(t, http.MethodPost, "/v1/sales",
		`{"product":"Tea_Hot","price":250,"cost":120,"quantity":2,"order_id":"A1","timestamp":"2024-05-10T09:05:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/v1/sales",
		`{"product":"Lemonade","price":300,"cost":150,"order_id":"A1","timestamp":"2024-05-10T09:40:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, 1, created.Quantity)

	// Pedido aberto com os dois itens
	rec = app.do(t, http.MethodGet, "/v1/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []domain.OpenOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "A1", orders[0].OrderID)
	assert.Equal(t, 3, orders[0].TotalQty)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.NewFromInt(800)))
	assert.Len(t, orders[0].Items, 2)

	// Relatório em buckets de 30 minutos
	rec = app.do(t, http.MethodGet, "/v1/report?bucket=30", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var buckets []domain.ReportBucket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].BucketStart.Equal(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Tea_Hot", buckets[0].Product)
	assert.True(t, buckets[0].Revenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, buckets[0].Profit.Equal(decimal.NewFromInt(260)))
	assert.True(t, buckets[1].BucketStart.Equal(time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Lemonade", buckets[1].Product)

	// Concluir o pedido o remove da lista de abertos
	rec = app.do(t, http.MethodPost, "/v1/orders/A1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"order_id":"A1","updated":2}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/v1/orders", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	// Backup explícito
	rec = app.do(t, http.MethodPost, "/v1/backups", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var backup domain.BackupResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &backup))
	assert.True(t, strings.HasPrefix(filepath.Base(backup.RecentPath), "recent_"))
	assert.True(t, strings.HasPrefix(filepath.Base(backup.ReportPath), "report_"))
	assert.Equal(t, 2, backup.Rows)

	app.sync.Wait()

	_, err := os.Stat(backup.RecentPath)
	require.NoError(t, err)

	// Novo boot sobre o mesmo diretório
	restarted := newTestAPI(t, dir)

	rec = restarted.do(t, http.MethodPost, "/v1/backups/restore", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var restored domain.RestoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restored))
	assert.Equal(t, 2, restored.Restored)
	assert.Equal(t, 0, restored.Skipped)
	assert.Equal(t, 0, restored.Rejected)

	rec = restarted.do(t, http.MethodGet, "/v1/sales", "")
	var sales []domain.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sales))
	require.Len(t, sales, 2)
	assert.Equal(t, "Lemonade", sales[0].Product)
	assert.True(t, sales[0].Done)

	// Pedido concluído continua fechado após a restauração
	rec = restarted.do(t, http.MethodGet, "/v1/orders", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	// A restauração só pode ser usada uma vez por boot
	rec = restarted.do(t, http.MethodPost, "/v1/backups/restore", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_MetricsAndCors(t *testing.T) {
	app := newTestAPI(t, t.TempDir())

	rec := app.do(t, http.MethodPost, "/v1/sales", `{"product":"Coffee","price":250.5,"cost":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pos_ledger_sales_created_total 1")
	assert.Contains(t, rec.Body.String(), "pos_ledger_ledger_sales 1")

	req := httptest.NewRequest(http.MethodOptions, "/v1/sales", nil)
	req.Header.Set("Origin", "http://caixa.local")
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://caixa.local", rec.Header().Get("Access-Control-Allow-Origin"))
}
