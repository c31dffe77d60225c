package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var placedAt = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of pgutil.AggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.pg = pg
	suite.Require().NoError(err)
	suite.db = pg.DB
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(nil)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructed_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_IsConcurrentModification() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RestoresEveryField() {
	ctx := context.Background()
	voucherID := kernel.NewUUID()
	original := suite.createTestOrder(&voucherID)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), got.ID())
	suite.Equal(original.CustomerID(), got.CustomerID())
	suite.Equal(original.ShopID(), got.ShopID())
	suite.Equal(original.OwnerID(), got.OwnerID())
	suite.Nil(got.ShipperID())
	suite.Equal(original.Address(), got.Address())
	suite.Equal(int64(100_000), got.Subtotal().Amount())
	suite.Equal(int64(10_000), got.Discount().Amount())
	suite.Equal(int64(15_000), got.ShipFee().Amount())
	suite.Equal(int64(105_000), got.Total().Amount())
	suite.Require().NotNil(got.VoucherID())
	suite.Equal(voucherID, *got.VoucherID())
	suite.Equal("SAVE10", got.VoucherCode())
	suite.Equal(order.Pending, got.Status())
	suite.Equal(order.Unpaid, got.PaymentStatus())
	suite.True(placedAt.Equal(got.Timestamps().PlacedAt))
	suite.False(got.IsPaidOut())
	suite.Equal(int64(0), got.Version())

	suite.Require().Len(got.Items(), 2)
	suite.Equal(original.Items()[0].ProductID(), got.Items()[0].ProductID())
	suite.Equal("Pho", got.Items()[0].Name())
	suite.Equal(2, got.Items()[1].Quantity())
	suite.Empty(got.PullDomainEvents(), "restored orders carry no events")

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleAndBumpsVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	owner, err := kernel.NewActor(testOrder.OwnerID(), kernel.RoleOwner)
	suite.Require().NoError(err)
	shipper, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleShipper)
	suite.Require().NoError(err)

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	for _, target := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		suite.Require().NoError(stored.Transition(owner, target, "", placedAt.Add(time.Minute)))
	}
	suite.Require().NoError(stored.AssignShipper(shipper, placedAt.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, stored))
	suite.Equal(int64(1), stored.Version())

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipping, got.Status())
	suite.Require().NotNil(got.ShipperID())
	suite.Equal(shipper.ID(), *got.ShipperID())
	suite.NotNil(got.Timestamps().ReadyAt)
	suite.NotNil(got.Timestamps().ShippingAt)
	suite.Nil(got.Timestamps().DeliveredAt)
	suite.Equal(int64(1), got.Version())
	suite.Len(got.Items(), 2, "items are not touched by updates")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_IsConcurrentModification() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	owner, err := kernel.NewActor(testOrder.OwnerID(), kernel.RoleOwner)
	suite.Require().NoError(err)
	customer, err := kernel.NewActor(testOrder.CustomerID(), kernel.RoleCustomer)
	suite.Require().NoError(err)

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Transition(owner, order.Confirmed, "", placedAt))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Transition(customer, order.Cancelled, "changed my mind", placedAt))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder(nil))

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(voucherID *kernel.UUID) *order.Order {
	pho, err := order.NewLineItem(kernel.NewUUID(), "Pho", kernel.MustMoney(60_000), 1)
	suite.Require().NoError(err)
	tea, err := order.NewLineItem(kernel.NewUUID(), "Tea", kernel.MustMoney(20_000), 2)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("Lan", "0901234567", "12 Hang Bac", "Hanoi")
	suite.Require().NoError(err)

	params := order.NewOrderParams{
		ID:         kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		ShopID:     kernel.NewUUID(),
		OwnerID:    kernel.NewUUID(),
		Items:      []order.LineItem{pho, tea},
		Address:    address,
		ShipFee:    kernel.MustMoney(15_000),
		PlacedAt:   placedAt,
	}
	if voucherID != nil {
		params.VoucherID = voucherID
		params.VoucherCode = "SAVE10"
		params.Discount = kernel.MustMoney(10_000)
	}

	o, err := order.NewOrder(params)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
