// Package scheduler contém os serviços de agendamento de backups do livro-caixa
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-ledger-api/internal/config"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/archiving"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
)

const backupTimeout = time.Minute

type BackupSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	OnMutation   bool
}

// BackupSyncService grava backups periódicos (cron) e sob demanda, após cada
// mutação do livro-caixa. Pedidos que chegam durante uma execução são
// agrupados em uma única execução seguinte.
type BackupSyncService struct {
	scheduler *gocron.Scheduler
	archiver  archiving.Archiver
	config    BackupSyncConfig

	syncMutex           sync.Mutex
	syncRunning         bool
	syncPending         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastError           string
	runs                sync.WaitGroup
}

func NewBackupSyncService(archiver archiving.Archiver, cfg *config.Config) *BackupSyncService {
	syncConfig := BackupSyncConfig{
		CronSchedule: cfg.BackupSync.CronSchedule, // Default: a cada 5 minutos
		SyncEnabled:  cfg.BackupSync.Enabled,      // Default: desabilitado
		OnMutation:   cfg.Backup.OnMutation,       // Default: habilitado
	}

	loc := cfg.App.Location
	if loc == nil {
		loc = time.Local
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"on_mutation":   syncConfig.OnMutation,
	}).Info("Configuração do agendador de backups carregada")

	return &BackupSyncService{
		scheduler: gocron.NewScheduler(loc),
		archiver:  archiver,
		config:    syncConfig,
	}
}

func (s *BackupSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de backup do livro-caixa desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de backup do livro-caixa")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SyncBackups(); err != nil {
			logrus.WithError(err).Error("Erro no backup agendado do livro-caixa")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar backup do livro-caixa: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de backup do livro-caixa")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncBackups grava um backup com os parâmetros padrão. Se já houver um em
// andamento, marca uma nova execução para quando ele terminar e retorna.
func (s *BackupSyncService) SyncBackups() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncPending = true
		s.syncMutex.Unlock()
		logrus.Debug("Backup já em execução, nova execução agendada para o término")
		return nil
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	var err error
	for {
		err = s.runOnce()

		s.syncMutex.Lock()
		if !s.syncPending {
			s.syncRunning = false
			s.syncMutex.Unlock()
			return err
		}
		s.syncPending = false
		s.syncMutex.Unlock()
	}
}

func (s *BackupSyncService) runOnce() error {
	s.syncMutex.Lock()
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	result, err := s.archiver.Backup(ctx, s.archiver.DefaultParams())

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.lastError = ""
	s.lastRunID = result.RunID
	return nil
}

// TriggerBackup é chamado após cada mutação do livro-caixa. Não bloqueia e
// nunca propaga erros para quem chamou.
func (s *BackupSyncService) TriggerBackup() {
	if !s.config.OnMutation {
		return
	}
	s.trigger()
}

// TriggerManualSync inicia manualmente um backup em segundo plano
func (s *BackupSyncService) TriggerManualSync() {
	logrus.Info("Iniciando backup manual do livro-caixa")
	s.trigger()
}

func (s *BackupSyncService) trigger() {
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		if err := s.SyncBackups(); err != nil {
			logrus.WithError(err).Warn("Falha no backup automático do livro-caixa, operação original mantida")
		}
	}()
}

// Wait aguarda os backups em segundo plano disparados até agora
func (s *BackupSyncService) Wait() {
	s.runs.Wait()
}

// GetStatus retorna o status atual do agendador
func (s *BackupSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"on_mutation":            s.config.OnMutation,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_error":             s.lastError,
	}
}

var _ selling.BackupTrigger = (*BackupSyncService)(nil)
