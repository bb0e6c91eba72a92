package cmd

import (
	"context"
	"fmt"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/notify"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/noticerepo"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/services"
	"logistics/internal/jobs"
	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators and builds handlers on demand.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     zerolog.Logger

	registry        *prometheus.Registry
	dispatchMetrics *metrics.DispatchMetrics
	jobMetrics      *metrics.JobMetrics

	dispatcher services.ShipmentDispatcher
	notices    *noticerepo.GormNoticeRepository
	redis      *notify.RedisPublisher
	notifier   *notify.Dispatcher
}

// NewCompositionRoot connects the optional redis sink and starts the notifier worker.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, log zerolog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	dispatchMetrics := metrics.NewDispatchMetrics(registry)

	c := &CompositionRoot{
		cfg:             cfg,
		gormDB:          gormDB,
		uowFactory:      postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:          log,
		registry:        registry,
		dispatchMetrics: dispatchMetrics,
		jobMetrics:      metrics.NewJobMetrics(registry),
		dispatcher: services.NewShipmentDispatcher(
			services.NewCapacityLedger(logger.Component(log, "capacity_ledger"), dispatchMetrics),
		),
		notices: noticerepo.NewGormNoticeRepository(gormDB),
	}

	sinks := []notify.Sink{c.notices}
	if cfg.Redis.Enabled() {
		publisher, err := notify.NewRedisPublisher(ctx, notify.RedisOptions{
			URL:          cfg.Redis.URL,
			Address:      cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting redis: %w", err)
		}
		c.redis = publisher
		sinks = append(sinks, publisher)
	}

	c.notifier = notify.NewDispatcher(notify.Options{
		QueueSize:   cfg.Notify.QueueSize,
		SinkTimeout: cfg.Notify.SinkTimeout,
	}, log, sinks...)
	c.notifier.Start()

	return c, nil
}

// Close drains pending notifications and closes the redis client.
func (c *CompositionRoot) Close(ctx context.Context) error {
	err := c.notifier.Stop(ctx)
	if c.redis != nil {
		if closeErr := c.redis.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchShipmentCommandHandler() commands.DispatchShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchShipmentCommandHandler(f, c.dispatcher, c.notifier, c.notifier, c.dispatchMetrics, c.logger)
}

func (c *CompositionRoot) CreateManualAssignCommandHandler() commands.ManualAssignCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewManualAssignCommandHandler(f, c.dispatcher, c.notifier, c.dispatchMetrics, c.logger)
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceStatusCommandHandler(f, c.dispatcher, c.notifier, c.dispatchMetrics, c.logger)
}

func (c *CompositionRoot) CreateReleaseVehicleCommandHandler() commands.ReleaseVehicleCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseVehicleCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateReconcileVehicleOccupancyCommandHandler() commands.ReconcileVehicleOccupancyCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileVehicleOccupancyCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateSetVehicleStatusCommandHandler() commands.SetVehicleStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetVehicleStatusCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateSetZoneStatusCommandHandler() commands.SetZoneStatusCommandHandler {
	var f commands.ZoneUoWFactory = FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetZoneStatusCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFleetUtilizationQueryHandler() queries.GetFleetUtilizationQueryHandler {
	return queries.NewGetFleetUtilizationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	health := map[string]httpadapter.HealthCheck{
		"database": func(ctx context.Context) error { return postgres.Ping(ctx, c.gormDB) },
	}
	if c.redis != nil {
		health["redis"] = c.redis.Ping
	}

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateShipment:      c.CreateCreateShipmentCommandHandler(),
		Dispatch:            c.CreateDispatchShipmentCommandHandler(),
		ManualAssign:        c.CreateManualAssignCommandHandler(),
		AdvanceStatus:       c.CreateAdvanceStatusCommandHandler(),
		ReleaseVehicle:      c.CreateReleaseVehicleCommandHandler(),
		SetVehicleStatus:    c.CreateSetVehicleStatusCommandHandler(),
		SetZoneStatus:       c.CreateSetZoneStatusCommandHandler(),
		GetShipment:         c.CreateGetShipmentQueryHandler(),
		GetFleetUtilization: c.CreateGetFleetUtilizationQueryHandler(),
		Notifications:       c.notices,
	}, health, c.registry, c.logger)
}

// CreateJobManager builds only the jobs whose schedule is configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if schedule := c.cfg.Jobs.RedispatchSchedule; schedule != "" {
		scheduled = append(scheduled, jobs.NewRedispatchJob(
			schedule,
			c.cfg.Jobs.RedispatchBatch,
			jobs.RedispatchBackoff{Initial: c.cfg.Jobs.RedispatchBackoff, Max: c.cfg.Jobs.RedispatchMaxBackoff},
			c.uowFactory.Create().ShipmentRepository(),
			c.CreateDispatchShipmentCommandHandler(),
			c.jobMetrics,
			c.logger,
		))
	}
	if schedule := c.cfg.Jobs.ReconcileSchedule; schedule != "" {
		scheduled = append(scheduled, jobs.NewOccupancyReconcileJob(
			schedule,
			c.CreateReconcileVehicleOccupancyCommandHandler(),
			c.jobMetrics,
			c.logger,
		))
	}
	return jobs.NewJobManager(scheduled...)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
