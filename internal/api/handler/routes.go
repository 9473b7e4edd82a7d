package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/pos-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/archiving"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/pos-ledger-api/internal/usecases/selling"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Sales(service selling.Seller, defaultLimit int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service, defaultLimit),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSale(service),
		},
	}
}

func Orders(service selling.Seller) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/orders",
			Method:  http.MethodGet,
			Handler: ListOpenOrders(service),
		},
		{
			Path:    "/v1/orders/:order_id/complete",
			Method:  http.MethodPost,
			Handler: CompleteOrder(service),
		},
	}
}

func Report(service reporting.Reporter, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/report",
			Method:  http.MethodGet,
			Handler: GetReport(service, loc),
		},
	}
}

func Backups(service archiving.Archiver, defaults BackupDefaults) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/backups",
			Method:  http.MethodPost,
			Handler: CreateBackup(service, defaults),
		},
		{
			Path:    "/v1/backups/restore",
			Method:  http.MethodPost,
			Handler: RestoreBackup(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
