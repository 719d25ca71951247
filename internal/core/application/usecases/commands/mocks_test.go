package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/domain/model/driver"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoW struct{ mock.Mock }

func (m *MockDriverUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDriverUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDriverUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDriverUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Forward(ctx context.Context, address string) (*kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.GeoPoint), args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, point kernel.GeoPoint) (*ports.Address, error) {
	args := m.Called(ctx, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Address), args.Error(1)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) Item(ctx context.Context, id string) (*ports.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.MenuItem), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendOrderConfirmation(ctx context.Context, confirmation ports.OrderConfirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

// RecordingPublisher captures published events for assertions. Publishing has
// no return value, so a plain recorder reads better than a testify mock here.
type RecordingPublisher struct {
	statusChanged   []ports.OrderStatusChangedEvent
	locationChanged []ports.DriverLocationChangedEvent
	reminderDue     []ports.ReminderDueEvent
}

func (p *RecordingPublisher) PublishStatusChanged(event ports.OrderStatusChangedEvent) {
	p.statusChanged = append(p.statusChanged, event)
}

func (p *RecordingPublisher) PublishLocationChanged(event ports.DriverLocationChangedEvent) {
	p.locationChanged = append(p.locationChanged, event)
}

func (p *RecordingPublisher) PublishReminderDue(event ports.ReminderDueEvent) {
	p.reminderDue = append(p.reminderDue, event)
}

// testOrder builds an order in the given status with the optional driver set.
func testOrder(t *testing.T, status order.Status, driverID *kernel.UUID) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Mia Weber", "+4915112345678", "Unter den Linden 1, Berlin", "", nil, "")
	require.NoError(t, err)

	destination, err := kernel.NewGeoPoint(52.52, 13.449)
	require.NoError(t, err)

	item, err := order.NewLineItem("pizza-margherita", "Pizza Margherita", 1250, 2)
	require.NoError(t, err)

	now := time.Now()
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), order.GenerateRef(),
		customer, destination, []order.LineItem{item},
		299, status, driverID, now, now,
	)
	require.NoError(t, err)

	return aggregate
}

// testDriver builds an active driver, optionally carrying an order.
func testDriver(t *testing.T, currentOrderID *kernel.UUID) *driver.Driver {
	t.Helper()

	d, err := driver.RestoreDriver(
		kernel.NewUUID(), "Alex Schmidt", "+4915198765432",
		true, nil, currentOrderID,
	)
	require.NoError(t, err)

	return d
}
