// Package metrics expõe os contadores Prometheus do livro-caixa e dos backups
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos_ledger"

// Metrics agrupa os coletores da aplicação. Um *Metrics nil é válido e
// ignora todas as chamadas, o que simplifica os testes dos serviços.
type Metrics struct {
	registry *prometheus.Registry

	salesCreated    prometheus.Counter
	salesDeleted    prometheus.Counter
	ordersCompleted prometheus.Counter
	ledgerSize      prometheus.Gauge
	backups         *prometheus.CounterVec
	backupDuration  prometheus.Histogram
	restores        *prometheus.CounterVec
	restoreRows     *prometheus.CounterVec
}

// New registra os coletores em um registry próprio, incluindo os coletores
// padrão de processo e runtime Go
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		salesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_created_total",
			Help:      "Vendas adicionadas ao livro-caixa.",
		}),
		salesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_deleted_total",
			Help:      "Vendas removidas do livro-caixa.",
		}),
		ordersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_items_completed_total",
			Help:      "Itens de pedido marcados como concluídos.",
		}),
		ledgerSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_sales",
			Help:      "Quantidade atual de vendas no livro-caixa.",
		}),
		backups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Execuções de backup por resultado.",
		}, []string{"result"}),
		backupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backup_duration_seconds",
			Help:      "Duração da gravação dos arquivos de backup.",
			Buckets:   prometheus.DefBuckets,
		}),
		restores: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restores_total",
			Help:      "Tentativas de restauração por resultado.",
		}, []string{"result"}),
		restoreRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restore_rows_total",
			Help:      "Linhas processadas na restauração por desfecho.",
		}, []string{"outcome"}),
	}
}

// Handler retorna o handler HTTP do endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry expõe o registry para testes e coletores externos
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) SaleCreated(ledgerSize int) {
	if m == nil {
		return
	}
	m.salesCreated.Inc()
	m.ledgerSize.Set(float64(ledgerSize))
}

func (m *Metrics) SaleDeleted(ledgerSize int) {
	if m == nil {
		return
	}
	m.salesDeleted.Inc()
	m.ledgerSize.Set(float64(ledgerSize))
}

func (m *Metrics) OrderCompleted(items int) {
	if m == nil {
		return
	}
	m.ordersCompleted.Add(float64(items))
}

// BackupFinished registra o resultado ("success" ou "error") e a duração
func (m *Metrics) BackupFinished(result string, seconds float64) {
	if m == nil {
		return
	}
	m.backups.WithLabelValues(result).Inc()
	m.backupDuration.Observe(seconds)
}

// RestoreFinished registra o resultado da tentativa e as contagens de linhas
func (m *Metrics) RestoreFinished(result string, restored, skipped, rejected, ledgerSize int) {
	if m == nil {
		return
	}
	m.restores.WithLabelValues(result).Inc()
	m.restoreRows.WithLabelValues("restored").Add(float64(restored))
	m.restoreRows.WithLabelValues("skipped").Add(float64(skipped))
	m.restoreRows.WithLabelValues("rejected").Add(float64(rejected))
	if result == "success" {
		m.ledgerSize.Set(float64(ledgerSize))
	}
}
