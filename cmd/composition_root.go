package cmd

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"bistro/internal/adapters/in/realtime"
	"bistro/internal/adapters/out/geocoding"
	"bistro/internal/adapters/out/mailer"
	"bistro/internal/adapters/out/postgres"
	"bistro/internal/adapters/out/postgres/menurepo"
	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/application/usecases/queries"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/services"
	"bistro/internal/core/ports"
)

// CompositionRoot wires adapters to use case handlers. Long-lived pieces
// (hub, scheduler, calculator) are created once; handlers are cheap and built
// per request for their dependencies.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	origin     kernel.GeoPoint
	calculator services.DeliveryFeeCalculator
	scheduler  *services.ReminderScheduler
	hub        *realtime.Hub
	geocoder   ports.Geocoder
	mailer     ports.Mailer
	catalog    ports.MenuCatalog

	logger *slog.Logger
}

// NewCompositionRoot builds the object graph from the validated config.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	origin, err := kernel.NewGeoPoint(config.OriginLatitude, config.OriginLongitude)
	if err != nil {
		return nil, err
	}

	var promoEndsAt time.Time
	if config.PromoFreeDeliveryUntil != "" {
		promoEndsAt, err = time.Parse(time.RFC3339, config.PromoFreeDeliveryUntil)
		if err != nil {
			return nil, err
		}
	}

	geocoder, err := geocoding.NewNominatimClient(config.GeocoderBaseURL, logger)
	if err != nil {
		return nil, err
	}

	smtpMailer, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		origin:     origin,
		calculator: services.NewDeliveryFeeCalculator(promoEndsAt),
		scheduler: services.NewReminderScheduler(services.ReminderConfig{
			MaxReminders: config.ReminderMaxAlerts,
			Interval:     time.Duration(config.ReminderIntervalSeconds) * time.Second,
			Cooldown:     time.Duration(config.ReminderCooldownSeconds) * time.Second,
		}),
		hub:      realtime.NewHub(logger),
		geocoder: geocoder,
		mailer:   smtpMailer,
		catalog:  menurepo.NewGormMenuCatalog(gormDB),
		logger:   logger,
	}, nil
}

// SeedReminderScheduler re-registers every order still waiting for
// confirmation. Called once on startup so reminders survive restarts.
func (c *CompositionRoot) SeedReminderScheduler(ctx context.Context) error {
	uow := c.uowFactory.Create()

	waiting, err := uow.OrderRepository().GetAllInStatus(ctx, order.New)
	if err != nil {
		return err
	}

	for _, o := range waiting {
		c.scheduler.Track(o.ID(), o.Ref(), o.CreatedAt())
	}

	c.logger.Info("reminder scheduler seeded", "orders", len(waiting))
	return nil
}

// Hub returns the realtime hub for the websocket endpoints.
func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

// Scheduler returns the single reminder scheduler instance.
func (c *CompositionRoot) Scheduler() *services.ReminderScheduler {
	return c.scheduler
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(
		f, c.geocoder, c.catalog, c.calculator, c.origin, c.scheduler, c.mailer, c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.scheduler, c.hub)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f, c.scheduler, c.hub)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordDriverFixCommandHandler() commands.RecordDriverFixCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDriverFixCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateRemindStaffCommandHandler() commands.RemindStaffCommandHandler {
	return commands.NewRemindStaffCommandHandler(c.scheduler, c.hub)
}

func (c *CompositionRoot) CreateDismissReminderCommandHandler() commands.DismissReminderCommandHandler {
	return commands.NewDismissReminderCommandHandler(c.scheduler)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverLocationQueryHandler() queries.GetDriverLocationQueryHandler {
	return queries.NewGetDriverLocationQueryHandler(c.gormDB, c.origin)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
