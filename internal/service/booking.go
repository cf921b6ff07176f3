package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shareit/internal/metrics"
	"shareit/internal/repository"
)

type BookingService struct {
	bookings BookingRepository
	items    ItemRepository
	users    UserRepository
	tx       Transactor
}

func NewBookingService(bookings BookingRepository, items ItemRepository, users UserRepository, tx Transactor) *BookingService {
	return &BookingService{bookings: bookings, items: items, users: users, tx: tx}
}

// Create validates the requested window and persists a WAITING booking.
// Precondition order matters: item existence, then ownership, then
// availability, then booker existence. Owners asking to book their own item
// get not-found, not forbidden. Item availability is left untouched.
func (s *BookingService) Create(ctx context.Context, bookerID int64, input BookingInput) (*BookingView, error) {
	now := time.Now()
	if input.Start.Before(now) {
		return nil, BadRequestf("booking cannot start in the past")
	}
	if !input.End.After(now) {
		return nil, BadRequestf("booking cannot end in the past")
	}
	if !input.End.After(input.Start) {
		return nil, BadRequestf("booking cannot end before it starts")
	}

	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("item %d does not exist", input.ItemID)
		}
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, NotFoundf("you cannot book your own item")
	}
	if !item.Available {
		return nil, BadRequestf("item %d is not available for booking", item.ID)
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("user %d not found", bookerID)
		}
		return nil, err
	}

	booking := &repository.Booking{
		Start:    input.Start,
		End:      input.End,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   repository.StatusWaiting,
	}
	id, err := s.bookings.Create(ctx, booking)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_booking").Inc()
		return nil, err
	}
	metrics.BookingsCreatedTotal.Inc()
	zap.L().Info("booking created",
		zap.Int64("booking_id", id),
		zap.Int64("item_id", item.ID),
		zap.Int64("booker_id", booker.ID))

	return &BookingView{
		ID:     id,
		Start:  booking.Start,
		End:    booking.End,
		Status: string(booking.Status),
		Item:   ItemRef{ID: item.ID, Name: item.Name},
		Booker: UserRef{ID: booker.ID, Name: booker.Name},
	}, nil
}

// SetApproved moves a WAITING booking to APPROVED or REJECTED. The lookup is
// owner-scoped, so non-owners get not-found. An APPROVED booking is a one-way
// gate; a REJECTED one may still be flipped. The read and the status write run
// in one transaction.
func (s *BookingService) SetApproved(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingView, error) {
	tx, err := s.tx.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	booking, err := s.bookings.GetByIDAndOwnerTx(ctx, tx, bookingID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("booking %d does not exist", bookingID)
		}
		return nil, err
	}
	if booking.Status == repository.StatusApproved {
		return nil, BadRequestf("booking %d is already approved", bookingID)
	}

	status := repository.StatusRejected
	if approved {
		status = repository.StatusApproved
	}
	if err := s.bookings.UpdateStatusTx(ctx, tx, bookingID, status); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("set_approved").Inc()
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("set_approved").Inc()
		return nil, err
	}
	booking.Status = status
	metrics.BookingsDecidedTotal.WithLabelValues(string(status)).Inc()
	zap.L().Info("booking decided",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(status)))

	view := newBookingView(booking)
	return &view, nil
}

// Get returns the booking when the caller is its booker or the item's owner.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*BookingView, error) {
	booking, err := s.bookings.GetForUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("booking %d does not exist", bookingID)
		}
		return nil, err
	}
	view := newBookingView(booking)
	return &view, nil
}

func (s *BookingService) ListForBooker(ctx context.Context, userID int64, state string, from, size int64) ([]BookingView, error) {
	return s.list(ctx, userID, state, from, size, s.bookings.ListByBooker)
}

func (s *BookingService) ListForOwner(ctx context.Context, userID int64, state string, from, size int64) ([]BookingView, error) {
	return s.list(ctx, userID, state, from, size, s.bookings.ListByOwner)
}

func (s *BookingService) list(ctx context.Context, userID int64, state string, from, size int64,
	query func(context.Context, int64, repository.BookingFilter, int64, int64) ([]repository.BookingDetails, error)) ([]BookingView, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFoundf("user %d not found", userID)
	}

	filter, err := parseBookingFilter(state)
	if err != nil {
		return nil, err
	}

	limit, offset := pageWindow(from, size)
	bookings, err := query(ctx, userID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, NotFoundf("no bookings found")
	}

	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, newBookingView(&bookings[i]))
	}
	return views, nil
}

func parseBookingFilter(state string) (repository.BookingFilter, error) {
	switch repository.BookingFilter(state) {
	case repository.FilterAll, repository.FilterCurrent, repository.FilterPast,
		repository.FilterFuture, repository.FilterWaiting, repository.FilterRejected:
		return repository.BookingFilter(state), nil
	default:
		return "", BadRequestf("Unknown state: UNSUPPORTED_STATUS")
	}
}

func newBookingView(b *repository.BookingDetails) BookingView {
	return BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   ItemRef{ID: b.ItemID, Name: b.ItemName},
		Booker: UserRef{ID: b.BookerID, Name: b.BookerName},
	}
}
