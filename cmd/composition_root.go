package cmd

import (
	"log/slog"

	"shipments/internal/adapters/out/postgres"
	"shipments/internal/core/application/interception"
	"shipments/internal/core/application/realtime"
	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/ports"
	"shipments/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use cases together. The approval
// interceptor is built here once so the advance executor registration
// happens exactly once before any request is served.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	storage     ports.BlobStorage
	publisher   ports.ChangePublisher
	stream      ports.ChangeStream
	mailer      ports.Mailer
	notifier    ports.LifecycleNotifier
	interceptor *interception.Interceptor
	logger      *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	storage ports.BlobStorage,
	publisher ports.ChangePublisher,
	stream ports.ChangeStream,
	mailer ports.Mailer,
	logger *slog.Logger,
) *CompositionRoot {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		storage:    storage,
		publisher:  publisher,
		stream:     stream,
		mailer:     mailer,
		notifier:   ports.NopLifecycleNotifier{},
		logger:     logger,
	}

	// Gate overrides always require out-of-band authorization.
	policy := interception.PolicyFunc(func(string) interception.Decision {
		return interception.NeedsApproval
	})
	var f interception.UoWFactory = FuncInterceptionUoWFactory(func() interception.UoW {
		return root.uowFactory.Create()
	})
	root.interceptor = interception.NewInterceptor(policy, f, logger)
	root.interceptor.Register(
		commands.ActionAdvanceShipment,
		commands.NewAdvanceShipmentActionExecutor(root.CreateAdvanceShipmentCommandHandler()),
	)

	return root
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	return commands.NewAdvanceShipmentCommandHandler(
		c.shipmentUoWFactory(), c.interceptor, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRecordDocumentUploadCommandHandler() commands.RecordDocumentUploadCommandHandler {
	return commands.NewRecordDocumentUploadCommandHandler(
		c.shipmentUoWFactory(), c.storage, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRemoveDocumentCommandHandler() commands.RemoveDocumentCommandHandler {
	return commands.NewRemoveDocumentCommandHandler(c.shipmentUoWFactory(), c.storage, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateResolveApprovalCommandHandler() commands.ResolveApprovalCommandHandler {
	return commands.NewResolveApprovalCommandHandler(c.interceptor)
}

func (c *CompositionRoot) CreateSendCorrespondenceCommandHandler() commands.SendCorrespondenceCommandHandler {
	return commands.NewSendCorrespondenceCommandHandler(c.shipmentUoWFactory(), c.mailer, c.storage, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.uowFactory.Create().ShipmentRepository())
}

func (c *CompositionRoot) CreateGetAllShipmentsQueryHandler() queries.GetAllShipmentsQueryHandler {
	return queries.NewGetAllShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingApprovalsQueryHandler() queries.GetPendingApprovalsQueryHandler {
	return queries.NewGetPendingApprovalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDocumentURLQueryHandler() queries.GetDocumentURLQueryHandler {
	return queries.NewGetDocumentURLQueryHandler(c.gormDB, c.storage)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.uowFactory.Create().ApprovalRepository(), c.logger)
}

// CreateReconciler builds the workspace reconciler consuming shipment change
// events from the change stream.
func (c *CompositionRoot) CreateReconciler(workspace *realtime.Workspace) *realtime.Reconciler {
	return realtime.NewReconciler(
		workspace, c.uowFactory.Create().ShipmentRepository(), c.stream, c.logger)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncInterceptionUoWFactory func() interception.UoW

func (f FuncInterceptionUoWFactory) Create() interception.UoW {
	return f()
}
