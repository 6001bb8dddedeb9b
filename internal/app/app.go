package app

import (
	"context"

	"masshouse/config"
	"masshouse/internal/database"
	"masshouse/internal/events"
	"masshouse/internal/handlers/middleware"
	"masshouse/internal/jobs"
	"masshouse/internal/repositories"
	"masshouse/internal/services"
	"masshouse/internal/websockets"

	adminController "masshouse/internal/controllers/admin"
	issuesController "masshouse/internal/controllers/issues"
	meterController "masshouse/internal/controllers/meter"
	parkingController "masshouse/internal/controllers/parking"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Services     services.Service
	Repositories repositories.Repository

	IssueController   issuesController.IssueControllerInterface
	ParkingController parkingController.ParkingControllerInterface
	MeterController   meterController.MeterControllerInterface
	AdminController   adminController.AdminControllerInterface
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	repos := repositories.New()

	appServices, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	websocket, err := websockets.New(db, eventBus, appServices.Auth, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, appServices.Auth, config)

	issueController := issuesController.New(repos, appServices, eventBus, config, db)
	parkingController := parkingController.New(repos, appServices, eventBus, config, db)
	meterController := meterController.New(repos, appServices, eventBus, config, db)
	adminController := adminController.New(repos, appServices, eventBus, config, db)

	if config.SchedulerEnabled {
		digestJob := jobs.NewOpenRequestsDigestJob(
			repos,
			appServices.Notification,
			db,
			config.AdminDigestEmail,
			services.Daily,
		)
		if err := appServices.Scheduler.AddJob(digestJob); err != nil {
			return &App{}, log.Err("failed to register digest job", err)
		}

		if err := appServices.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:          db,
		Middleware:        middleware,
		Websocket:         websocket,
		EventBus:          eventBus,
		Config:            config,
		Services:          appServices,
		Repositories:      repos,
		IssueController:   issueController,
		ParkingController: parkingController,
		MeterController:   meterController,
		AdminController:   adminController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Auth,
		a.Services.Transaction,
		a.Services.Reference,
		a.Services.Notification,
		a.Services.Scheduler,
		a.Repositories.Issue,
		a.Repositories.ParkingBooking,
		a.Repositories.MeterReading,
		a.IssueController,
		a.ParkingController,
		a.MeterController,
		a.AdminController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
