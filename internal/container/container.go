package container

import (
	"context"
	"fmt"

	"pulseboard/adapters/excel"
	"pulseboard/adapters/notify"
	"pulseboard/adapters/postgres"
	"pulseboard/app"
	"pulseboard/domain/core"
	"pulseboard/internal"
	"pulseboard/internal/config"
	"pulseboard/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	KPIRepo        ports.KPIRepository
	TargetRepo     ports.TargetRepository
	ActualRepo     ports.ActualRepository
	AlertRepo      ports.AlertRepository
	DepartmentRepo ports.DepartmentRepository

	// Alert dispatch
	Notifier ports.Notifier

	// Application services
	AlertEngine        *app.AlertEngine
	SubmissionService  *app.SubmissionService
	ForecastService    *app.ForecastService
	AnomalyService     *app.AnomalyService
	ScenarioService    *app.ScenarioService
	AggregationService *app.AggregationService

	// Report export
	ReportWriter *excel.ReportWriter
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config: cfg,
		Logger: internal.NewDefaultLogger(),
	}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)

	c.initRepositories()
	c.initNotifier()
	c.initServices()

	c.Logger.Info("container initialized with database connection")
	return nil
}

func (c *Container) initRepositories() {
	c.KPIRepo = postgres.NewKPIRepository(c.DB)
	c.TargetRepo = postgres.NewTargetRepository(c.DB)
	c.ActualRepo = postgres.NewActualRepository(c.DB)
	c.AlertRepo = postgres.NewAlertRepository(c.DB)
	c.DepartmentRepo = postgres.NewDepartmentRepository(c.DB)
}

func (c *Container) initNotifier() {
	if url := c.Config.Alerting.WebhookURL; url != "" {
		c.Logger.Info("alert notifications via webhook: %s", url)
		c.Notifier = notify.NewWebhookNotifier(url)
		return
	}
	c.Notifier = notify.NewLogNotifier(c.Logger)
}

func (c *Container) initServices() {
	history := app.NewHistoryBuilder(c.TargetRepo, c.ActualRepo)

	c.AlertEngine = app.NewAlertEngine(c.KPIRepo, c.TargetRepo, c.ActualRepo, c.AlertRepo, c.Notifier, c.Logger)
	c.SubmissionService = app.NewSubmissionService(c.KPIRepo, c.TargetRepo, c.ActualRepo, c.AlertEngine, core.SystemClock, c.Logger)
	c.ForecastService = app.NewForecastService(c.KPIRepo, history)
	c.AnomalyService = app.NewAnomalyService(c.KPIRepo, history, c.AlertRepo, c.Logger)
	c.ScenarioService = app.NewScenarioService(c.KPIRepo, c.ActualRepo)
	c.AggregationService = app.NewAggregationService(c.DepartmentRepo, c.KPIRepo, c.TargetRepo, c.ActualRepo)
	c.ReportWriter = excel.NewReportWriter()
}

// Shutdown releases container resources
func (c *Container) Shutdown(_ context.Context) error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	return nil
}
