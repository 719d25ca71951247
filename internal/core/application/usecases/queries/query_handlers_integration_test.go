package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bistro/internal/adapters/out/postgres/driverrepo"
	"bistro/internal/adapters/out/postgres/orderrepo"
	"bistro/internal/core/application/usecases/queries"
	"bistro/internal/core/domain/model/driver"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/errs"
)

type mockAggregateTracker struct{}

func (t *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// QueryHandlersIntegrationTestSuite runs the read-side handlers against a
// real PostgreSQL container seeded through the write-side repositories.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	origin     kernel.GeoPoint
	orderRepo  *orderrepo.GormOrderRepository
	driverRepo *driverrepo.GormDriverRepository

	listHandler     queries.GetOrdersByStatusQueryHandler
	detailsHandler  queries.GetOrderQueryHandler
	locationHandler queries.GetDriverLocationQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{}))

	suite.origin, err = kernel.NewGeoPoint(52.520008, 13.404954)
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.driverRepo = driverrepo.NewGormDriverRepository(db, &mockAggregateTracker{})

	suite.listHandler = queries.NewGetOrdersByStatusQueryHandler(db)
	suite.detailsHandler = queries.NewGetOrderQueryHandler(db)
	suite.locationHandler = queries.NewGetDriverLocationQueryHandler(db, suite.origin)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, drivers").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(status order.Status, driverID *kernel.UUID) *order.Order {
	customer, err := order.NewCustomer(
		"Mia Weber", "+4915112345678", "Unter den Linden 1, Berlin",
		"mia@example.com", nil, "ring twice",
	)
	suite.Require().NoError(err)

	destination, err := kernel.NewGeoPoint(52.52, 13.449)
	suite.Require().NoError(err)

	pizza, err := order.NewLineItem("pizza-margherita", "Pizza Margherita", 1250, 2)
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), order.GenerateRef(),
		customer, destination, []order.LineItem{pizza},
		299, status, driverID, now, now,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *QueryHandlersIntegrationTestSuite) seedDriverWithFix(lat, lon float64) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), "Alex Schmidt", "+4915198765432")
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)
	suite.Require().NoError(d.RecordFix(point, time.Now().UTC().Truncate(time.Microsecond)))

	suite.Require().NoError(suite.driverRepo.Add(context.Background(), d))
	return d
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderList_EmptyDatabase() {
	result, err := suite.listHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderList_FiltersByStatus() {
	suite.seedOrder(order.New, nil)
	suite.seedOrder(order.New, nil)
	suite.seedOrder(order.Delivered, nil)

	query, err := queries.NewGetOrdersByStatusQuery(order.New)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	for _, row := range result {
		suite.Equal(order.New, row.Status)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderList_ComputesTotalsAndSortsOldestFirst() {
	older := suite.seedOrder(order.New, nil)
	newer := suite.seedOrder(order.Accepted, nil)
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET created_at = created_at + interval '1 minute' WHERE id = ?",
		newer.ID().Bytes(),
	).Error)

	result, err := suite.listHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(older.ID()))
	suite.True(result[1].ID.IsEqual(newer.ID()))
	suite.Equal(int64(2500), result[0].SubtotalCents)
	suite.Equal(int64(299), result[0].DeliveryFeeCents)
	suite.Equal(int64(2799), result[0].GrandTotalCents)
	suite.Equal("Mia Weber", result[0].CustomerName)
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderList_InvalidQuery() {
	var invalid queries.GetOrdersByStatusQuery

	_, err := suite.listHandler.Handle(context.Background(), invalid)

	suite.Require().ErrorIs(err, queries.ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderDetails_RoundTrip() {
	driverID := kernel.NewUUID()
	seeded := suite.seedOrder(order.OnTheWay, &driverID)

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.detailsHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(seeded.ID()))
	suite.Equal(seeded.Ref(), result.Ref)
	suite.Equal(order.OnTheWay, result.Status)
	suite.Equal("Unter den Linden 1, Berlin", result.CustomerAddress)
	suite.Require().Len(result.Items, 1)
	suite.Equal("pizza-margherita", result.Items[0].ItemID)
	suite.Equal(int64(1250), result.Items[0].UnitPriceCents)
	suite.Equal(2, result.Items[0].Quantity)
	suite.Equal(int64(2799), result.GrandTotalCents)
	suite.Require().NotNil(result.DriverID)
	suite.True(result.DriverID.IsEqual(driverID))
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderDetails_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.detailsHandler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriverLocation_NewOrderFallsBackToOrigin() {
	seeded := suite.seedOrder(order.New, nil)

	query, err := queries.NewGetDriverLocationQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.locationHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.LocationSourceOrigin, result.Source)
	suite.InDelta(suite.origin.Latitude(), result.Latitude, 1e-9)
	suite.InDelta(suite.origin.Longitude(), result.Longitude, 1e-9)
	suite.Nil(result.LastUpdated)
	suite.Empty(result.DriverName)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriverLocation_OnTheWayWithFixIsLive() {
	d := suite.seedDriverWithFix(52.515, 13.43)
	driverID := d.ID()
	seeded := suite.seedOrder(order.OnTheWay, &driverID)

	query, err := queries.NewGetDriverLocationQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.locationHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.LocationSourceDriver, result.Source)
	suite.InDelta(52.515, result.Latitude, 1e-9)
	suite.InDelta(13.43, result.Longitude, 1e-9)
	suite.Require().NotNil(result.LastUpdated)
	suite.Equal("Alex Schmidt", result.DriverName)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriverLocation_OnTheWayWithoutFixFallsBackToOrigin() {
	d, err := driver.NewDriver(kernel.NewUUID(), "Jan Becker", "+4915187654321")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.driverRepo.Add(context.Background(), d))

	driverID := d.ID()
	seeded := suite.seedOrder(order.OnTheWay, &driverID)

	query, err := queries.NewGetDriverLocationQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.locationHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.LocationSourceOrigin, result.Source)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriverLocation_DeliveredPinsDestination() {
	d := suite.seedDriverWithFix(52.515, 13.43)
	driverID := d.ID()
	seeded := suite.seedOrder(order.Delivered, &driverID)

	query, err := queries.NewGetDriverLocationQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.locationHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.LocationSourceDestination, result.Source)
	suite.InDelta(52.52, result.Latitude, 1e-9)
	suite.InDelta(13.449, result.Longitude, 1e-9)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriverLocation_UnknownOrder() {
	query, err := queries.NewGetDriverLocationQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.locationHandler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
