package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/pos-ledger-api/pkg/log"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

// GetReport agrega o livro-caixa. bucket não numérico usa 30; start/end
// inválidos são ignorados.
func GetReport(service reporting.Reporter, loc *time.Location) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := domain.ReportFilters{
			BucketMinutes: utils.ParseBucketMinutes(query.Get("bucket")),
			Start:         utils.ParseOptionalInstant(query.Get("start"), loc),
			End:           utils.ParseOptionalInstant(query.Get("end"), loc),
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"bucket": filters.BucketMinutes,
			"start":  query.Get("start"),
			"end":    query.Get("end"),
		}).Debug("report: gerando relatório")

		buckets := service.Report(filters)
		if buckets == nil {
			buckets = []domain.ReportBucket{}
		}

		writeJSON(w, http.StatusOK, buckets)
	})
}
