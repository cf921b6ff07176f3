package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "shareit/internal/db/mocks"
	"shareit/internal/repository"
	"shareit/internal/service"
	mock_repository "shareit/internal/service/mocks"
)

type bookingMocks struct {
	bookings *mock_repository.MockBookingRepository
	items    *mock_repository.MockItemRepository
	users    *mock_repository.MockUserRepository
	tx       *mock_repository.MockTransactor
	dbTx     *mock_database.MockTx
}

func newBookingService(t *testing.T) (*service.BookingService, bookingMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := bookingMocks{
		bookings: mock_repository.NewMockBookingRepository(ctrl),
		items:    mock_repository.NewMockItemRepository(ctrl),
		users:    mock_repository.NewMockUserRepository(ctrl),
		tx:       mock_repository.NewMockTransactor(ctrl),
		dbTx:     mock_database.NewMockTx(ctrl),
	}
	return service.NewBookingService(m.bookings, m.items, m.users, m.tx), m
}

// expectTx primes a transaction for the approval flow. The deferred rollback
// runs on every path, including after a commit.
func (m bookingMocks) expectTx(ctx context.Context) {
	m.tx.EXPECT().BeginTx(ctx).Return(m.dbTx, nil)
	m.dbTx.EXPECT().Rollback(ctx).Return(nil).AnyTimes()
}

func futureWindow() (time.Time, time.Time) {
	start := time.Now().Add(24 * time.Hour)
	return start, start.Add(48 * time.Hour)
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, m := newBookingService(t)
		start, end := futureWindow()

		m.items.EXPECT().GetByID(ctx, int64(2)).
			Return(&repository.Item{ID: 2, OwnerID: 1, Name: "drill", Available: true}, nil)
		m.users.EXPECT().GetByID(ctx, int64(5)).
			Return(&repository.User{ID: 5, Name: "Bob"}, nil)
		m.bookings.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b *repository.Booking) (int64, error) {
				assert.Equal(t, repository.StatusWaiting, b.Status)
				assert.Equal(t, int64(2), b.ItemID)
				assert.Equal(t, int64(5), b.BookerID)
				return 11, nil
			})

		view, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: end, ItemID: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(11), view.ID)
		assert.Equal(t, "WAITING", view.Status)
		assert.Equal(t, "drill", view.Item.Name)
		assert.Equal(t, "Bob", view.Booker.Name)
	})

	t.Run("start in the past", func(t *testing.T) {
		svc, _ := newBookingService(t)
		start := time.Now().Add(-time.Hour)

		_, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: start.Add(2 * time.Hour), ItemID: 2})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("end not after start", func(t *testing.T) {
		svc, _ := newBookingService(t)
		start, _ := futureWindow()

		_, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: start, ItemID: 2})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("missing item", func(t *testing.T) {
		svc, m := newBookingService(t)
		start, end := futureWindow()

		m.items.EXPECT().GetByID(ctx, int64(42)).Return(nil, repository.ErrObjectNotFound)

		_, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: end, ItemID: 42})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("booking own item is hidden as not found", func(t *testing.T) {
		svc, m := newBookingService(t)
		start, end := futureWindow()

		m.items.EXPECT().GetByID(ctx, int64(2)).
			Return(&repository.Item{ID: 2, OwnerID: 5, Available: true}, nil)

		_, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: end, ItemID: 2})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unavailable item", func(t *testing.T) {
		svc, m := newBookingService(t)
		start, end := futureWindow()

		m.items.EXPECT().GetByID(ctx, int64(2)).
			Return(&repository.Item{ID: 2, OwnerID: 1, Available: false}, nil)

		_, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: end, ItemID: 2})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("missing booker", func(t *testing.T) {
		svc, m := newBookingService(t)
		start, end := futureWindow()

		m.items.EXPECT().GetByID(ctx, int64(2)).
			Return(&repository.Item{ID: 2, OwnerID: 1, Available: true}, nil)
		m.users.EXPECT().GetByID(ctx, int64(5)).Return(nil, repository.ErrObjectNotFound)

		_, err := svc.Create(ctx, 5, service.BookingInput{Start: start, End: end, ItemID: 2})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestBookingService_SetApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		svc, m := newBookingService(t)
		m.expectTx(ctx)

		m.bookings.EXPECT().GetByIDAndOwnerTx(ctx, m.dbTx, int64(11), int64(1)).
			Return(&repository.BookingDetails{ID: 11, Status: repository.StatusWaiting, ItemOwnerID: 1}, nil)
		m.bookings.EXPECT().UpdateStatusTx(ctx, m.dbTx, int64(11), repository.StatusApproved).Return(nil)
		m.dbTx.EXPECT().Commit(ctx).Return(nil)

		view, err := svc.SetApproved(ctx, 1, 11, true)
		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", view.Status)
	})

	t.Run("reject", func(t *testing.T) {
		svc, m := newBookingService(t)
		m.expectTx(ctx)

		m.bookings.EXPECT().GetByIDAndOwnerTx(ctx, m.dbTx, int64(11), int64(1)).
			Return(&repository.BookingDetails{ID: 11, Status: repository.StatusWaiting}, nil)
		m.bookings.EXPECT().UpdateStatusTx(ctx, m.dbTx, int64(11), repository.StatusRejected).Return(nil)
		m.dbTx.EXPECT().Commit(ctx).Return(nil)

		view, err := svc.SetApproved(ctx, 1, 11, false)
		assert.NoError(t, err)
		assert.Equal(t, "REJECTED", view.Status)
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		svc, m := newBookingService(t)
		m.expectTx(ctx)

		m.bookings.EXPECT().GetByIDAndOwnerTx(ctx, m.dbTx, int64(11), int64(9)).
			Return(nil, repository.ErrObjectNotFound)

		_, err := svc.SetApproved(ctx, 9, 11, true)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("approved is final and rolls back", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.tx.EXPECT().BeginTx(ctx).Return(m.dbTx, nil)
		m.bookings.EXPECT().GetByIDAndOwnerTx(ctx, m.dbTx, int64(11), int64(1)).
			Return(&repository.BookingDetails{ID: 11, Status: repository.StatusApproved}, nil)
		m.dbTx.EXPECT().Rollback(ctx).Return(nil)

		_, err := svc.SetApproved(ctx, 1, 11, false)
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("rejected can still be approved", func(t *testing.T) {
		svc, m := newBookingService(t)
		m.expectTx(ctx)

		m.bookings.EXPECT().GetByIDAndOwnerTx(ctx, m.dbTx, int64(11), int64(1)).
			Return(&repository.BookingDetails{ID: 11, Status: repository.StatusRejected}, nil)
		m.bookings.EXPECT().UpdateStatusTx(ctx, m.dbTx, int64(11), repository.StatusApproved).Return(nil)
		m.dbTx.EXPECT().Commit(ctx).Return(nil)

		view, err := svc.SetApproved(ctx, 1, 11, true)
		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", view.Status)
	})

	t.Run("begin failure surfaces", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.tx.EXPECT().BeginTx(ctx).Return(nil, assert.AnError)

		_, err := svc.SetApproved(ctx, 1, 11, true)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestBookingService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("participant sees the booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.bookings.EXPECT().GetForUser(ctx, int64(11), int64(5)).
			Return(&repository.BookingDetails{ID: 11, Status: repository.StatusWaiting, BookerID: 5}, nil)

		view, err := svc.Get(ctx, 5, 11)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), view.ID)
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.bookings.EXPECT().GetForUser(ctx, int64(11), int64(99)).
			Return(nil, repository.ErrObjectNotFound)

		_, err := svc.Get(ctx, 99, 11)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestBookingService_ListForBooker(t *testing.T) {
	ctx := context.Background()

	t.Run("pages by index, not offset", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.users.EXPECT().Exists(ctx, int64(5)).Return(true, nil)
		m.bookings.EXPECT().ListByBooker(ctx, int64(5), repository.FilterAll, int64(10), int64(20)).
			Return([]repository.BookingDetails{{ID: 11}}, nil)

		views, err := svc.ListForBooker(ctx, 5, "ALL", 20, 10)
		assert.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.users.EXPECT().Exists(ctx, int64(5)).Return(false, nil)

		_, err := svc.ListForBooker(ctx, 5, "ALL", 0, 10)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unknown state", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.users.EXPECT().Exists(ctx, int64(5)).Return(true, nil)

		_, err := svc.ListForBooker(ctx, 5, "SOMETIMES", 0, 10)
		assert.ErrorIs(t, err, service.ErrBadRequest)
		assert.EqualError(t, err, "Unknown state: UNSUPPORTED_STATUS")
	})

	t.Run("empty page is not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.users.EXPECT().Exists(ctx, int64(5)).Return(true, nil)
		m.bookings.EXPECT().ListByBooker(ctx, int64(5), repository.FilterAll, int64(10), int64(0)).
			Return(nil, nil)

		_, err := svc.ListForBooker(ctx, 5, "ALL", 0, 10)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestBookingService_ListForOwner(t *testing.T) {
	ctx := context.Background()

	svc, m := newBookingService(t)

	m.users.EXPECT().Exists(ctx, int64(1)).Return(true, nil)
	m.bookings.EXPECT().ListByOwner(ctx, int64(1), repository.FilterWaiting, int64(10), int64(0)).
		Return([]repository.BookingDetails{{ID: 11, Status: repository.StatusWaiting}}, nil)

	views, err := svc.ListForOwner(ctx, 1, "WAITING", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "WAITING", views[0].Status)
}
