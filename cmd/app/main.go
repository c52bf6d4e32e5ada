package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geodispatch/cmd"
	httpserver "geodispatch/internal/adapters/in/http"
	"geodispatch/internal/adapters/out/natsbus"
	"geodispatch/internal/adapters/out/postgres/addressrepo"
	"geodispatch/internal/adapters/out/postgres/assignmentrepo"
	"geodispatch/internal/adapters/out/postgres/courierrepo"
	"geodispatch/internal/adapters/out/postgres/orderrepo"
	"geodispatch/internal/adapters/out/postgres/shiftrepo"
	"geodispatch/internal/adapters/out/postgres/storerepo"
	"geodispatch/internal/adapters/out/postgres/zonerepo"
	"geodispatch/internal/adapters/out/valkeylock"
	"geodispatch/internal/core/application/events"
	"geodispatch/internal/jobs"
	"geodispatch/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("no .env file, using environment as-is")
	}

	config, err := cmd.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(config.LogLevel, config.LogFormat)

	if err := run(config, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(config cmd.Config, logger *slog.Logger) error {
	db, err := openDatabase(config)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	locker, err := valkeylock.NewLocker(config.ValkeyAddr)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer locker.Close()

	publisher, err := natsbus.NewPublisher(config.NatsURL)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	defer publisher.Close()

	bus := events.NewBus(logger)
	bus.Subscribe(events.NewRealtimeRelay(publisher, natsbus.NewNotifier(publisher), logger))

	root := cmd.NewCompositionRoot(config, db, locker, bus, logger)

	jobManager := jobs.NewJobManager(
		root.CreateOrderUoWFactory(),
		root.CreateDispatcher(),
		root.CreateExpireOffersCommandHandler(),
		root.CreateCancelStaleOrdersCommandHandler(),
		root.CreateCloseOverdueShiftsCommandHandler(),
		jobs.Schedules{
			DispatchSweep: config.DispatchSweepSchedule,
			OrderTimeout:  config.OrderTimeoutSchedule,
			ShiftWatchdog: config.ShiftWatchdogSchedule,
		},
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	server := httpserver.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAdvanceOrderCommandHandler(),
		root.CreateDispatchOrderCommandHandler(),
		root.CreateAcceptAssignmentCommandHandler(),
		root.CreateRejectAssignmentCommandHandler(),
		root.CreateProgressAssignmentCommandHandler(),
		root.CreateUpdateAddressCoordinatesCommandHandler(),
		root.CreateCloseOverdueShiftsCommandHandler(),
		root.CreateGetUndispatchedOrdersQueryHandler(),
		root.CreateGetOrderHistoryQueryHandler(),
		root.CreateGetOpenShiftsQueryHandler(),
		root.CreateResolveZoneQueryHandler(),
	)

	e := server.NewRouter()
	e.Logger.SetLevel(log.INFO)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryDTO{},
		&assignmentrepo.AssignmentDTO{},
		&courierrepo.CourierDTO{},
		&shiftrepo.ShiftDTO{},
		&zonerepo.ZoneDTO{},
		&addressrepo.AddressDTO{},
		&storerepo.StoreDTO{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
