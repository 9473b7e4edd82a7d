package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-ledger-api/internal/api/handler"
	"github.com/vfg2006/pos-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/pos-ledger-api/internal/config"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/archiving"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
	"github.com/vfg2006/pos-ledger-api/pkg/metrics"
	"github.com/vfg2006/pos-ledger-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com todas as rotas e a cadeia de middlewares
func NewHandler(
	config *config.Config,
	seller selling.Seller,
	reporter reporting.Reporter,
	archiver archiving.Archiver,
	backupSyncService handler.SyncService,
	m *metrics.Metrics,
) http.Handler {
	cronServices := handler.CronJobServices{
		BackupSyncService: backupSyncService,
	}

	backupDefaults := handler.BackupDefaults{
		BucketMinutes: config.Backup.BucketMinutes,
		StartHour:     config.Backup.StartHour,
		EndHour:       config.Backup.EndHour,
		Location:      config.App.Location,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(m.Handler())...),
		router.WithRoutes(handler.Sales(seller, config.Ledger.ListDefaultLimit)...),
		router.WithRoutes(handler.Orders(seller)...),
		router.WithRoutes(handler.Report(reporter, config.App.Location)...),
		router.WithRoutes(handler.Backups(archiver, backupDefaults)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(config *config.Config, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
