package postgresql_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "shareit/internal/db/mocks"
	"shareit/internal/repository"
	"shareit/internal/repository/postgresql"
)

func TestBookingRepo_Create(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewBookingRepo(mockDB)

	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	booking := &repository.Booking{
		Start:    start,
		End:      start.Add(48 * time.Hour),
		ItemID:   2,
		BookerID: 5,
		Status:   repository.StatusWaiting,
	}

	mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(),
		gomock.Eq(booking.Start), gomock.Eq(booking.End),
		gomock.Eq(booking.ItemID), gomock.Eq(booking.BookerID),
		gomock.Eq(repository.StatusWaiting)).
		Return(fakeRow{id: 11})

	id, err := repo.Create(ctx, booking)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestBookingRepo_GetForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		want := &repository.BookingDetails{
			ID:          11,
			Status:      repository.StatusWaiting,
			ItemID:      2,
			ItemName:    "drill",
			ItemOwnerID: 1,
			BookerID:    5,
			BookerName:  "Bob",
		}

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(int64(11)), gomock.Eq(int64(5))).
			DoAndReturn(func(_ context.Context, dest *repository.BookingDetails, _ string, _ ...interface{}) error {
				*dest = *want
				return nil
			})

		booking, err := repo.GetForUser(ctx, 11, 5)
		assert.NoError(t, err)
		assert.Equal(t, want, booking)
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		booking, err := repo.GetForUser(ctx, 11, 99)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, booking)
	})
}

func TestBookingRepo_GetByIDAndOwnerTx(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		want := &repository.BookingDetails{
			ID:          11,
			Status:      repository.StatusWaiting,
			ItemID:      2,
			ItemOwnerID: 1,
			BookerID:    5,
		}

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(int64(11)), gomock.Eq(int64(1))).
			DoAndReturn(func(_ context.Context, dest *repository.BookingDetails, _ string, _ ...interface{}) error {
				*dest = *want
				return nil
			})

		booking, err := repo.GetByIDAndOwnerTx(ctx, mockTx, 11, 1)
		assert.NoError(t, err)
		assert.Equal(t, want, booking)
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		booking, err := repo.GetByIDAndOwnerTx(ctx, mockTx, 11, 99)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, booking)
	})
}

func TestBookingRepo_UpdateStatusTx(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewBookingRepo(mockDB)

	mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(),
		gomock.Eq(repository.StatusApproved), gomock.Eq(int64(11))).
		Return(nil, nil)

	err := repo.UpdateStatusTx(ctx, mockTx, 11, repository.StatusApproved)
	assert.NoError(t, err)
}

func TestBookingRepo_ListByBooker(t *testing.T) {
	ctx := context.Background()

	t.Run("all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		want := []repository.BookingDetails{{ID: 11, BookerID: 5}}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(int64(5)), gomock.Eq(int64(10)), gomock.Eq(int64(0))).
			DoAndReturn(func(_ context.Context, dest *[]repository.BookingDetails, query string, _ ...interface{}) error {
				assert.Contains(t, query, "b.booker_id = $1")
				assert.Contains(t, query, "ORDER BY b.end_date DESC")
				*dest = want
				return nil
			})

		bookings, err := repo.ListByBooker(ctx, 5, repository.FilterAll, 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, want, bookings)
	})

	t.Run("status filter adds predicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(int64(5)), gomock.Eq(repository.StatusRejected),
			gomock.Eq(int64(10)), gomock.Eq(int64(20))).
			DoAndReturn(func(_ context.Context, dest *[]repository.BookingDetails, query string, _ ...interface{}) error {
				assert.Contains(t, query, "b.status = $2")
				return nil
			})

		_, err := repo.ListByBooker(ctx, 5, repository.FilterRejected, 10, 20)
		assert.NoError(t, err)
	})

	t.Run("time filters use the clock", func(t *testing.T) {
		for filter, predicate := range map[repository.BookingFilter]string{
			repository.FilterCurrent: "b.start_date <= NOW() AND b.end_date >= NOW()",
			repository.FilterPast:    "b.end_date < NOW()",
			repository.FilterFuture:  "b.start_date > NOW()",
		} {
			ctrl := gomock.NewController(t)

			mockDB := mock_database.NewMockDB(ctrl)
			repo := postgresql.NewBookingRepo(mockDB)

			mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, dest *[]repository.BookingDetails, query string, _ ...interface{}) error {
					assert.True(t, strings.Contains(query, predicate), "filter %s", filter)
					return nil
				})

			_, err := repo.ListByBooker(ctx, 5, filter, 10, 0)
			assert.NoError(t, err)
			ctrl.Finish()
		}
	})
}

func TestBookingRepo_ListByOwner(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewBookingRepo(mockDB)

	mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
		gomock.Eq(int64(1)), gomock.Eq(int64(10)), gomock.Eq(int64(0))).
		DoAndReturn(func(_ context.Context, dest *[]repository.BookingDetails, query string, _ ...interface{}) error {
			assert.Contains(t, query, "i.owner_id = $1")
			return nil
		})

	_, err := repo.ListByOwner(ctx, 1, repository.FilterAll, 10, 0)
	assert.NoError(t, err)
}

func TestBookingRepo_HasFinishedApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("finished rental exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(int64(5)), gomock.Eq(int64(2)), gomock.Eq(repository.StatusApproved)).
			DoAndReturn(func(_ context.Context, dest *bool, _ string, _ ...interface{}) error {
				*dest = true
				return nil
			})

		ok, err := repo.HasFinishedApproved(ctx, 5, 2)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewBookingRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		ok, err := repo.HasFinishedApproved(ctx, 5, 2)
		assert.Equal(t, expectedErr, err)
		assert.False(t, ok)
	})
}
