// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal feature packages.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/statisticsnorway/dataset-access-sub000/internal/access"
	accesshandler "github.com/statisticsnorway/dataset-access-sub000/internal/access/handler"
	accessmetrics "github.com/statisticsnorway/dataset-access-sub000/internal/access/metrics"
	adminhandler "github.com/statisticsnorway/dataset-access-sub000/internal/admin/handler"
	"github.com/statisticsnorway/dataset-access-sub000/internal/audit"
	httpapi "github.com/statisticsnorway/dataset-access-sub000/internal/http"
	"github.com/statisticsnorway/dataset-access-sub000/internal/platform/config"
	"github.com/statisticsnorway/dataset-access-sub000/internal/platform/httpserver"
	"github.com/statisticsnorway/dataset-access-sub000/internal/platform/logger"
	"github.com/statisticsnorway/dataset-access-sub000/internal/platform/postgres"
	platformredis "github.com/statisticsnorway/dataset-access-sub000/internal/platform/redis"
	"github.com/statisticsnorway/dataset-access-sub000/internal/provision"
	"github.com/statisticsnorway/dataset-access-sub000/internal/readiness"
	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	groupstore "github.com/statisticsnorway/dataset-access-sub000/internal/store/group"
	"github.com/statisticsnorway/dataset-access-sub000/internal/store/observed"
	rolestore "github.com/statisticsnorway/dataset-access-sub000/internal/store/role"
	userstore "github.com/statisticsnorway/dataset-access-sub000/internal/store/user"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		users  store.UserStore
		roles  store.RoleStore
		groups store.GroupStore
		probe  func(ctx context.Context) error
	)

	if cfg.PostgresURL != "" {
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		if err := postgres.Bootstrap(ctx, db); err != nil {
			log.Error("failed to bootstrap schema", "error", err)
			os.Exit(1)
		}
		users = userstore.NewPostgres(db)
		roles = rolestore.NewPostgres(db)
		groups = groupstore.NewPostgres(db)
		probe = func(ctx context.Context) error { return postgres.Health(ctx, db) }
	} else {
		log.Warn("POSTGRES_URL not set, using in-memory stores")
		users = userstore.NewMemory()
		roles = rolestore.NewMemory()
		groups = groupstore.NewMemory()
		probe = func(context.Context) error { return nil }
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		roles = rolestore.NewCached(roles, client.Client, cfg.RoleCacheTTL, log)
	}

	monitor := readiness.New(probe, log, readiness.WithIdleThreshold(cfg.IdleThreshold))
	if err := monitor.Bootstrap(ctx, cfg.BootstrapAttempts, cfg.BootstrapBackoff); err != nil {
		// Connectivity at boot is a hard precondition.
		log.Error("backing store unreachable at startup", "error", err)
		os.Exit(1)
	}

	// Every store operation, anywhere in the system, feeds the readiness
	// sample from here on.
	users = observed.NewUserStore(users, monitor)
	roles = observed.NewRoleStore(roles, monitor)
	groups = observed.NewGroupStore(groups, monitor)

	metrics := accessmetrics.New()
	opts := []access.Option{
		access.WithMetrics(metrics),
		access.WithTimeout(cfg.DecisionTimeout),
	}

	if cfg.ProvisionDomain != "" && cfg.ProvisionTemplatePath != "" {
		template, err := provision.LoadTemplate(cfg.ProvisionTemplatePath)
		if err != nil {
			log.Error("invalid provisioning template", "error", err)
			os.Exit(1)
		}
		opts = append(opts, access.WithProvisioner(
			provision.New(users, roles, cfg.ProvisionDomain, template, log),
		))
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("failed to connect audit publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := publisher.Close(flushCtx); err != nil {
				log.Warn("audit publisher shutdown incomplete", "error", err)
			}
		}()
		opts = append(opts, access.WithPublisher(publisher))
	}

	engine := access.NewService(users, roles, groups, log, opts...)

	var accepting atomic.Bool
	router := httpapi.NewRouter(
		httpapi.NewHealth(monitor, &accepting),
		accesshandler.New(engine, log),
		adminhandler.New(users, roles, groups, log),
	)

	srv := httpserver.New(cfg.Addr, router, cfg.DecisionTimeout)

	go func() {
		log.Info("starting dataset-access", "addr", cfg.Addr)
		accepting.Store(true)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	accepting.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
