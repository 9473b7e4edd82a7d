package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-ledger-api/infrastructure/repository"
	"github.com/vfg2006/pos-ledger-api/infrastructure/storage"
	"github.com/vfg2006/pos-ledger-api/internal/api"
	"github.com/vfg2006/pos-ledger-api/internal/config"
	"github.com/vfg2006/pos-ledger-api/internal/scheduler"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/archiving"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
	"github.com/vfg2006/pos-ledger-api/pkg/log"
	"github.com/vfg2006/pos-ledger-api/pkg/metrics"
)

func main() {
	// Formato dos logs antes da configuração ser carregada
	log.Setup(logrus.InfoLevel.String())

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	ledger := repository.NewLedgerRepository(cfg.App.Location)
	reportService := reporting.NewService(ledger, cfg.App.Location)

	// A janela de restauração conta a partir da criação do arquivador
	archiveService := archiving.NewService(ledger, reportService, backupStore(ctx, cfg), m, archiving.Config{
		Location:            cfg.App.Location,
		RestoreWindow:       cfg.Restore.Window,
		AllowRestoreAnytime: cfg.Restore.Anytime,
		BucketMinutes:       cfg.Backup.BucketMinutes,
		StartHour:           cfg.Backup.StartHour,
		EndHour:             cfg.Backup.EndHour,
	})

	backupSyncService := scheduler.NewBackupSyncService(archiveService, cfg)
	if err := backupSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de backups")
	} else {
		logrus.Info("Agendador de backups iniciado com sucesso")
	}

	sellingService := selling.NewService(ledger, backupSyncService, m)

	handler := api.NewHandler(cfg, sellingService, reportService, archiveService, backupSyncService, m)
	server := api.New(cfg, handler)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	cancel()

	// Aguarda os backups disparados pelas últimas mutações
	done := make(chan struct{})
	go func() {
		backupSyncService.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("Backups pendentes concluídos")
	case <-time.After(30 * time.Second):
		logrus.Warn("Tempo esgotado aguardando backups pendentes")
	}
}

// backupStore cria o armazenamento local de backups, espelhado no S3 quando habilitado
func backupStore(ctx context.Context, cfg *config.Config) storage.BackupStore {
	store := storage.NewFileBackupStore(cfg.Backup.Dir)

	if !cfg.S3Mirror.Enabled {
		return store
	}

	mirror, err := storage.NewS3Mirror(ctx, storage.S3Config{
		Bucket:    cfg.S3Mirror.Bucket,
		Region:    cfg.S3Mirror.Region,
		Endpoint:  cfg.S3Mirror.Endpoint,
		Prefix:    cfg.S3Mirror.Prefix,
		PathStyle: cfg.S3Mirror.PathStyle,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao configurar espelho S3, backups apenas locais")
		return store
	}

	logrus.WithFields(logrus.Fields{
		"bucket": cfg.S3Mirror.Bucket,
		"prefix": cfg.S3Mirror.Prefix,
	}).Info("Espelho S3 dos backups habilitado")

	return storage.NewMirroredBackupStore(store, mirror)
}
