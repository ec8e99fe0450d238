package orderrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises the conditional updates the
// order lifecycle rests on against a real PostgreSQL database. The contention
// tests are the point: the win/lose outcomes must come from the database's
// write predicates, not from anything the application checked beforehand.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) repository() ports.OrderRepository {
	return suite.factory.Create().OrderRepository()
}

// newStoredOrder persists a pending, unpaid order created at createdAt with
// the given claim window and returns it.
func (suite *OrderRepositoryIntegrationTestSuite) newStoredOrder(
	number string, createdAt time.Time, ttl time.Duration,
) *order.Order {
	pricing, err := order.NewPricing(1000, 200, 100, 1300, 65, 0, 1365, order.DefaultCurrency)
	suite.Require().NoError(err)

	anOrder, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		order.Contact{Name: "Sam", Phone: "604-555-0101", Address: "800 Robson St"},
		order.Contact{Name: "Kai", Phone: "604-555-0102", Address: "1055 W Georgia St"},
		"fragile",
		4.2,
		pricing,
		nil,
		createdAt,
		ttl,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository().Add(context.Background(), anOrder))
	return anOrder
}

// newPaidOrder persists an order and flips it to paid so it is claimable.
func (suite *OrderRepositoryIntegrationTestSuite) newPaidOrder(number string) *order.Order {
	anOrder := suite.newStoredOrder(number, time.Now().UTC(), 30*time.Minute)

	flipped, err := suite.repository().MarkPaid(context.Background(), number)
	suite.Require().NoError(err)
	suite.Require().True(flipped)

	return anOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetByNumber_RoundTrips() {
	ctx := context.Background()

	stored := suite.newStoredOrder("ORD-ROUNDTRIP", time.Now().UTC(), 30*time.Minute)

	loaded, err := suite.repository().GetByNumber(ctx, stored.Number())
	suite.Require().NoError(err)

	suite.Equal(stored.Number(), loaded.Number())
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Equal(order.PaymentStatusUnpaid, loaded.PaymentStatus())
	suite.Equal(stored.Pickup(), loaded.Pickup())
	suite.Equal(stored.Dropoff(), loaded.Dropoff())
	suite.Equal(int64(1365), loaded.Pricing().Total())
	suite.Equal(int64(65), loaded.Pricing().Tax())
	suite.NotNil(loaded.ExpiresAt())
	suite.Nil(loaded.Driver())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumberConflicts() {
	suite.newStoredOrder("ORD-DUP", time.Now().UTC(), 30*time.Minute)

	pricing, err := order.NewPricing(500, 0, 0, 500, 25, 0, 525, order.DefaultCurrency)
	suite.Require().NoError(err)

	duplicate, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-DUP",
		order.Contact{Phone: "604-555-0103", Address: "500 Granville St"},
		order.Contact{Phone: "604-555-0104", Address: "200 Burrard St"},
		"",
		1.0,
		pricing,
		nil,
		time.Now().UTC(),
		30*time.Minute,
	)
	suite.Require().NoError(err)

	err = suite.repository().Add(context.Background(), duplicate)
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_UnknownOrderNotFound() {
	_, err := suite.repository().GetByNumber(context.Background(), "ORD-MISSING")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAcceptByDriver_BindsWinner() {
	ctx := context.Background()
	suite.newPaidOrder("ORD-ACCEPT")
	driverID := kernel.NewUUID()

	accepted, err := suite.repository().AcceptByDriver(ctx, "ORD-ACCEPT", driverID, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Equal(order.StatusAssigned, accepted.Status())
	suite.Require().NotNil(accepted.Driver())
	suite.True(accepted.Driver().IsEqual(driverID))
	suite.Nil(accepted.ExpiresAt(), "claim should close the expiry window")
	suite.NotNil(accepted.Timeline().AssignedAt)
}

// TestAcceptByDriver_SingleWinnerUnderContention races real concurrent claims
// for one order. Exactly one must win and the persisted driver id must be the
// winner's.
func (suite *OrderRepositoryIntegrationTestSuite) TestAcceptByDriver_SingleWinnerUnderContention() {
	ctx := context.Background()
	suite.newPaidOrder("ORD-RACE")

	const contenders = 8

	var (
		wg        sync.WaitGroup
		resultsMu sync.Mutex
		winners   []kernel.UUID
		conflicts int
	)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			driverID := kernel.NewUUID()

			_, err := suite.repository().AcceptByDriver(ctx, "ORD-RACE", driverID, time.Now().UTC())

			resultsMu.Lock()
			defer resultsMu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, driverID)
			default:
				suite.ErrorIs(err, errs.ErrObjectConflict)
				conflicts++
			}
		}()
	}
	wg.Wait()

	suite.Require().Len(winners, 1, "exactly one claim must win")
	suite.Equal(contenders-1, conflicts)

	stored, err := suite.repository().GetByNumber(ctx, "ORD-RACE")
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.Driver())
	suite.True(stored.Driver().IsEqual(winners[0]), "persisted driver must be the winner")
	suite.Equal(order.StatusAssigned, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAcceptByDriver_UnpaidOrderIsRefused() {
	ctx := context.Background()
	suite.newStoredOrder("ORD-UNPAID", time.Now().UTC(), 30*time.Minute)

	_, err := suite.repository().AcceptByDriver(ctx, "ORD-UNPAID", kernel.NewUUID(), time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrInvalidState)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAcceptByDriver_ClosedWindowIsRefused() {
	ctx := context.Background()

	// Created two hours ago with a 30 minute window: expired but unswept.
	suite.newStoredOrder("ORD-LATE", time.Now().UTC().Add(-2*time.Hour), 30*time.Minute)
	_, err := suite.repository().MarkPaid(ctx, "ORD-LATE")
	suite.Require().NoError(err)

	_, err = suite.repository().AcceptByDriver(ctx, "ORD-LATE", kernel.NewUUID(), time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrInvalidState)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAcceptByDriver_SecondClaimConflicts() {
	ctx := context.Background()
	suite.newPaidOrder("ORD-TAKEN")

	_, err := suite.repository().AcceptByDriver(ctx, "ORD-TAKEN", kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	_, err = suite.repository().AcceptByDriver(ctx, "ORD-TAKEN", kernel.NewUUID(), time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrObjectConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTransitionStatus_StampsTimeline() {
	ctx := context.Background()
	suite.newPaidOrder("ORD-PROGRESS")

	_, err := suite.repository().AcceptByDriver(ctx, "ORD-PROGRESS", kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	updated, err := suite.repository().TransitionStatus(
		ctx, "ORD-PROGRESS", order.StatusAssigned, order.StatusPickedUp, time.Now().UTC(),
	)
	suite.Require().NoError(err)

	suite.Equal(order.StatusPickedUp, updated.Status())
	suite.NotNil(updated.Timeline().PickedUpAt)
	suite.Nil(updated.Timeline().DeliveredAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTransitionStatus_StaleFromStatusIsRefused() {
	ctx := context.Background()
	suite.newPaidOrder("ORD-STALE")

	// The order is still pending; a transition asserting assigned must fail
	// and name the actual status.
	_, err := suite.repository().TransitionStatus(
		ctx, "ORD-STALE", order.StatusAssigned, order.StatusPickedUp, time.Now().UTC(),
	)
	suite.Require().ErrorIs(err, errs.ErrInvalidTransition)
	suite.ErrorContains(err, order.StatusPending.String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestExpirySweep_FindsAndCancelsUnclaimed() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.newStoredOrder("ORD-EXPIRED-1", now.Add(-2*time.Hour), 30*time.Minute)
	suite.newStoredOrder("ORD-EXPIRED-2", now.Add(-1*time.Hour), 30*time.Minute)
	suite.newStoredOrder("ORD-FRESH", now, 30*time.Minute)

	numbers, err := suite.repository().FindExpiredNumbers(ctx, now, 100)
	suite.Require().NoError(err)
	suite.Equal([]string{"ORD-EXPIRED-1", "ORD-EXPIRED-2"}, numbers, "oldest window first, fresh order excluded")

	for _, number := range numbers {
		cancelled, err := suite.repository().CancelIfUnclaimed(ctx, number, now)
		suite.Require().NoError(err)
		suite.True(cancelled)
	}

	stored, err := suite.repository().GetByNumber(ctx, "ORD-EXPIRED-1")
	suite.Require().NoError(err)
	suite.Equal(order.StatusCancelled, stored.Status())
	suite.NotNil(stored.Timeline().CancelledAt)
	suite.Nil(stored.ExpiresAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCancelIfUnclaimed_ClaimedOrderIsSkipped() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.newPaidOrder("ORD-CLAIMED")
	_, err := suite.repository().AcceptByDriver(ctx, "ORD-CLAIMED", kernel.NewUUID(), now)
	suite.Require().NoError(err)

	cancelled, err := suite.repository().CancelIfUnclaimed(ctx, "ORD-CLAIMED", now)
	suite.Require().NoError(err)
	suite.False(cancelled, "a claimed order is not the sweep's to cancel")

	stored, err := suite.repository().GetByNumber(ctx, "ORD-CLAIMED")
	suite.Require().NoError(err)
	suite.Equal(order.StatusAssigned, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestMarkPaid_FlipsOnceThenNoop() {
	ctx := context.Background()
	suite.newStoredOrder("ORD-PAY", time.Now().UTC(), 30*time.Minute)

	flipped, err := suite.repository().MarkPaid(ctx, "ORD-PAY")
	suite.Require().NoError(err)
	suite.True(flipped)

	flipped, err = suite.repository().MarkPaid(ctx, "ORD-PAY")
	suite.Require().NoError(err)
	suite.False(flipped, "second confirmation must be a no-op")

	stored, err := suite.repository().GetByNumber(ctx, "ORD-PAY")
	suite.Require().NoError(err)
	suite.Equal(order.PaymentStatusPaid, stored.PaymentStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_FiltersAndOrders() {
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		suite.newStoredOrder(fmt.Sprintf("ORD-LIST-%d", i), now.Add(time.Duration(i)*time.Minute), 30*time.Minute)
	}
	_, err := suite.repository().MarkPaid(ctx, "ORD-LIST-1")
	suite.Require().NoError(err)

	paid := order.PaymentStatusPaid
	results, err := suite.repository().List(ctx, ports.OrderQuery{PaymentStatus: &paid})
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("ORD-LIST-1", results[0].Number())

	results, err = suite.repository().List(ctx, ports.OrderQuery{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(results, 2)
	suite.Equal("ORD-LIST-2", results[0].Number(), "newest first")
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
