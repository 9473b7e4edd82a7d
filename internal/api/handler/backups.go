package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/archiving"
	"github.com/vfg2006/pos-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/pos-ledger-api/pkg/log"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

// BackupDefaults são usados quando a requisição não informa bucket ou horas
type BackupDefaults struct {
	BucketMinutes int
	StartHour     int
	EndHour       int
	Location      *time.Location
}

func (d BackupDefaults) params(query url.Values) (domain.BackupParams, error) {
	params := domain.BackupParams{
		BucketMinutes: d.BucketMinutes,
		Start:         utils.ParseOptionalInstant(query.Get("start"), d.Location),
		End:           utils.ParseOptionalInstant(query.Get("end"), d.Location),
		StartHour:     d.StartHour,
		EndHour:       d.EndHour,
	}

	if raw := query.Get("bucket"); raw != "" {
		params.BucketMinutes = utils.ParseBucketMinutes(raw)
	}

	var err error
	if params.StartHour, err = parseHour(query, "start_hour", params.StartHour); err != nil {
		return params, err
	}
	if params.EndHour, err = parseHour(query, "end_hour", params.EndHour); err != nil {
		return params, err
	}

	return params, nil
}

func parseHour(query url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return fallback, nil
	}

	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 24 {
		return 0, domain.NewInvalidInput(key, "must be an integer between 0 and 24")
	}
	return hour, nil
}

// CreateBackup grava os arquivos recent_<data>.csv e report_<data>.csv
func CreateBackup(service archiving.Archiver, defaults BackupDefaults) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params, err := defaults.params(r.URL.Query())
		if err != nil {
			logger.WithError(err).Warn("backups: parâmetros inválidos")
			apiErrors.WriteFromError(w, err)
			return
		}

		result, err := service.Backup(r.Context(), params)
		if err != nil {
			logger.WithError(err).Error("backups: erro ao gravar backup")
			apiErrors.WriteError(w, apiErrors.ErrBackupWrite, "Erro ao gravar backup", nil)
			return
		}

		writeJSON(w, http.StatusCreated, result)
	})
}

// RestoreBackup mescla o backup mais recente no livro-caixa.
// allow_duplicates=1 (ou true) desliga a deduplicação.
func RestoreBackup(service archiving.Archiver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowDuplicates, _ := strconv.ParseBool(r.URL.Query().Get("allow_duplicates"))

		result, err := service.Restore(r.Context(), allowDuplicates)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("backups: restauração recusada")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
