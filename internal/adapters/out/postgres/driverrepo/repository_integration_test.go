package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bistro/internal/adapters/out/postgres/driverrepo"
	"bistro/internal/core/domain/model/driver"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// DriverRepositoryIntegrationTestSuite verifies driver persistence behavior
// against a real PostgreSQL container.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
	tracker    *MockAggregateTracker
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = driverrepo.NewGormDriverRepository(suite.db, suite.tracker)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) createTestDriver() *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), "Alex Schmidt", "+4915198765432")
	suite.Require().NoError(err)
	return d
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAddAndGet_NoFix() {
	ctx := context.Background()
	testDriver := suite.createTestDriver()

	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	restored, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal("Alex Schmidt", restored.Name())
	suite.True(restored.IsActive())
	suite.Nil(restored.LastFix())
	suite.Nil(restored.CurrentOrder())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_PersistsFixAndAssignment() {
	ctx := context.Background()
	testDriver := suite.createTestDriver()
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	point, err := kernel.NewGeoPoint(52.51, 13.42)
	suite.Require().NoError(err)
	recordedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(testDriver.RecordFix(point, recordedAt))
	orderID := kernel.NewUUID()
	suite.Require().NoError(testDriver.AssignOrder(orderID))

	suite.Require().NoError(suite.repository.Update(ctx, testDriver))

	restored, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(restored.LastFix())
	suite.InDelta(52.51, restored.LastFix().Point().Latitude(), 1e-9)
	suite.True(restored.LastFix().RecordedAt().Equal(recordedAt))
	suite.Require().NotNil(restored.CurrentOrder())
	suite.True(restored.CurrentOrder().IsEqual(orderID))
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_ClearsAssignmentAndDeactivates() {
	ctx := context.Background()
	testDriver := suite.createTestDriver()
	suite.Require().NoError(testDriver.AssignOrder(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	testDriver.UnassignOrder()
	testDriver.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, testDriver))

	restored, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Nil(restored.CurrentOrder())
	suite.False(restored.IsActive())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
