// Package archiving grava snapshots CSV do livro-caixa e restaura o snapshot
// mais recente uma única vez logo após a inicialização do processo
package archiving

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository"
	"github.com/vfg2006/pos-ledger-api/infrastructure/storage"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/pos-ledger-api/pkg/csvcodec"
	"github.com/vfg2006/pos-ledger-api/pkg/metrics"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

const (
	RecentPrefix = "recent_"
	ReportPrefix = "report_"
	FileSuffix   = ".csv"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Archiver define as operações de backup e restauração
type Archiver interface {
	Backup(ctx context.Context, params domain.BackupParams) (*domain.BackupResult, error)
	Restore(ctx context.Context, allowDuplicates bool) (*domain.RestoreResult, error)
	DefaultParams() domain.BackupParams
}

type Config struct {
	Location            *time.Location
	RestoreWindow       time.Duration
	AllowRestoreAnytime bool
	BucketMinutes       int
	StartHour           int
	EndHour             int
}

type Service struct {
	ledger   repository.LedgerRepository
	reporter reporting.Reporter
	store    storage.BackupStore
	metrics  *metrics.Metrics
	cfg      Config

	now      func() time.Time
	bootTime time.Time

	backupMu    sync.Mutex
	restoreMu   sync.Mutex
	restoreUsed bool
}

// NewService cria o serviço de backup. O instante de criação é considerado o
// boot do processo para a janela de restauração.
func NewService(
	ledger repository.LedgerRepository,
	reporter reporting.Reporter,
	store storage.BackupStore,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		ledger:   ledger,
		reporter: reporter,
		store:    store,
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
		bootTime: time.Now(),
	}
}

// DefaultParams são os parâmetros dos backups automáticos: o dia corrente
// de 00:00 a 23:59 no fuso configurado
func (s *Service) DefaultParams() domain.BackupParams {
	start := utils.StartOfDay(s.now().In(s.cfg.Location))
	end := start.Add(23*time.Hour + 59*time.Minute)

	return domain.BackupParams{
		BucketMinutes: s.cfg.BucketMinutes,
		Start:         &start,
		End:           &end,
		StartHour:     s.cfg.StartHour,
		EndHour:       s.cfg.EndHour,
	}
}

// Backup grava recent_<data>.csv com o livro-caixa completo e report_<data>.csv
// com o resumo por produto. Backups do mesmo dia sobrescrevem os mesmos arquivos.
func (s *Service) Backup(ctx context.Context, params domain.BackupParams) (*domain.BackupResult, error) {
	s.backupMu.Lock()
	defer s.backupMu.Unlock()

	startedAt := time.Now()

	result, err := s.writeBackup(ctx, params)
	if err != nil {
		s.metrics.BackupFinished("error", time.Since(startedAt).Seconds())
		logrus.WithError(err).Error("Erro ao gravar backup do livro-caixa")
		return nil, err
	}

	s.metrics.BackupFinished("success", time.Since(startedAt).Seconds())

	logrus.WithFields(logrus.Fields{
		"run_id":      result.RunID,
		"rows":        result.Rows,
		"recent_path": result.RecentPath,
		"report_path": result.ReportPath,
	}).Info("Backup do livro-caixa gravado")

	return result, nil
}

func (s *Service) writeBackup(ctx context.Context, params domain.BackupParams) (*domain.BackupResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id da execução de backup")
	}

	writtenAt := s.now().In(s.cfg.Location)
	date := writtenAt.Format(time.DateOnly)

	sales := s.ledger.All()

	var recent bytes.Buffer
	if err := csvcodec.WriteSales(&recent, sales); err != nil {
		return nil, errors.Wrap(err, "erro ao serializar livro-caixa")
	}

	filters := domain.ReportFilters{
		BucketMinutes: utils.ClampBucketMinutes(params.BucketMinutes),
		Start:         params.Start,
		End:           params.End,
	}
	// mesmo snapshot do recent_ para os dois arquivos concordarem
	summaries := s.reporter.SummarizeSales(sales, filters, params.StartHour, params.EndHour)

	var report bytes.Buffer
	if err := csvcodec.WriteSummaries(&report, summaries); err != nil {
		return nil, errors.Wrap(err, "erro ao serializar relatório")
	}

	recentPath, err := s.store.Write(ctx, RecentPrefix+date+FileSuffix, recent.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar backup completo")
	}

	reportPath, err := s.store.Write(ctx, ReportPrefix+date+FileSuffix, report.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar relatório de backup")
	}

	return &domain.BackupResult{
		RunID:      runID,
		RecentPath: recentPath,
		ReportPath: reportPath,
		Rows:       len(sales),
		WrittenAt:  writtenAt,
	}, nil
}

// Restore mescla o recent_*.csv mais recente no livro-caixa. Só é permitido
// dentro da janela após o boot e uma única vez, salvo AllowRestoreAnytime.
// Linhas inválidas são contadas como rejeitadas e linhas já presentes como
// ignoradas, a menos que allowDuplicates seja verdadeiro.
func (s *Service) Restore(ctx context.Context, allowDuplicates bool) (*domain.RestoreResult, error) {
	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	if err := s.checkGate(); err != nil {
		s.metrics.RestoreFinished("gate_closed", 0, 0, 0, 0)
		logrus.WithError(err).Warn("Restauração recusada")
		return nil, err
	}

	result, err := s.restoreLatest(ctx, allowDuplicates)
	if err != nil {
		s.metrics.RestoreFinished("error", 0, 0, 0, 0)
		logrus.WithError(err).Error("Erro ao restaurar backup")
		return nil, err
	}

	s.restoreUsed = true
	s.metrics.RestoreFinished("success", result.Restored, result.Skipped, result.Rejected, s.ledger.Len())

	logrus.WithFields(logrus.Fields{
		"source":           result.Source,
		"restored":         result.Restored,
		"skipped":          result.Skipped,
		"rejected":         result.Rejected,
		"allow_duplicates": allowDuplicates,
	}).Info("Backup restaurado no livro-caixa")

	return result, nil
}

func (s *Service) checkGate() error {
	if s.cfg.AllowRestoreAnytime {
		return nil
	}

	if s.now().Sub(s.bootTime) > s.cfg.RestoreWindow {
		return domain.ErrRestoreWindowExpired
	}
	if s.restoreUsed {
		return domain.ErrRestoreAlreadyUsed
	}

	return nil
}

func (s *Service) restoreLatest(ctx context.Context, allowDuplicates bool) (*domain.RestoreResult, error) {
	name, err := s.store.Latest(ctx, RecentPrefix, FileSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao procurar backup")
	}
	if name == "" {
		return nil, domain.ErrNoBackupAvailable
	}

	data, err := s.store.Read(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler backup %s", name)
	}

	candidates, err := csvcodec.ReadSales(bytes.NewReader(data), s.cfg.Location)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao interpretar backup %s", name)
	}
	if len(candidates) == 0 {
		return nil, &domain.LedgerError{Err: domain.ErrEmptyBackup, Details: name}
	}

	result := &domain.RestoreResult{Source: name}

	err = s.ledger.RunInTransaction(func(tx repository.LedgerTx) error {
		existing := make(map[string]struct{})
		for _, sale := range tx.All() {
			existing[saleKey(sale)] = struct{}{}
		}

		for _, candidate := range candidates {
			if candidate.Err != nil {
				result.Rejected++
				logrus.WithError(candidate.Err).WithField("line", candidate.Line).Warn("Linha do backup rejeitada")
				continue
			}

			key := inputKey(candidate.Input)
			if _, duplicated := existing[key]; duplicated && !allowDuplicates {
				result.Skipped++
				continue
			}

			if _, err := tx.Append(candidate.Input); err != nil {
				result.Rejected++
				logrus.WithError(err).WithField("line", candidate.Line).Warn("Linha do backup rejeitada")
				continue
			}

			existing[key] = struct{}{}
			result.Restored++
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao mesclar backup no livro-caixa")
	}

	return result, nil
}

// saleKey e inputKey compõem a chave de deduplicação
// timestamp|product|quantity|price|cost|note. orderId e done não fazem parte dela.
func saleKey(sale domain.Sale) string {
	return dedupKey(utils.FormatInstant(sale.Timestamp), sale.Product, sale.Quantity,
		sale.Price.String(), sale.Cost.String(), sale.Note)
}

func inputKey(input domain.SaleInput) string {
	return dedupKey(input.Timestamp, strings.TrimSpace(input.Product), input.Quantity,
		input.Price.String(), input.Cost.String(), input.Note)
}

func dedupKey(ts, product string, quantity int, price, cost, note string) string {
	return strings.Join([]string{ts, product, strconv.Itoa(quantity), price, cost, note}, "|")
}
