package cmd

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
	logger     zerolog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger zerolog.Logger) (CompositionRoot, error) {
	outbox, err := notifier.NewOutboxNotifier(gormDB, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewAccessPolicy(),
		notifier:   outbox,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f, c.policy, c.notifier)
}

func (c *CompositionRoot) CreateValidateDeliveryCommandHandler() commands.ValidateDeliveryCommandHandler {
	var f commands.ValidationUoWFactory = FuncValidationUoWFactory(func() commands.ValidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewValidateDeliveryCommandHandler(f, c.policy, c.notifier)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	var f commands.IssueUoWFactory = FuncIssueUoWFactory(func() commands.IssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportIssueCommandHandler(f, c.policy, c.notifier)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetIssuesQueryHandler() queries.GetIssuesQueryHandler {
	return queries.NewGetIssuesQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateValidateDeliveryCommandHandler(),
		c.CreateReportIssueCommandHandler(),
		c.CreateGetTrackingQueryHandler(),
		c.CreateGetIssuesQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sender := notifier.NewLogSender(c.logger)
	dispatcher, err := notifier.NewDispatcher(c.gormDB, sender, c.config.NotifyBatchSize, c.logger)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(dispatcher, c.logger), nil
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncValidationUoWFactory func() commands.ValidationUoW

func (f FuncValidationUoWFactory) Create() commands.ValidationUoW {
	return f()
}

type FuncIssueUoWFactory func() commands.IssueUoW

func (f FuncIssueUoWFactory) Create() commands.IssueUoW {
	return f()
}
