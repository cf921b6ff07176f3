package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"shareit/internal/db"
	"shareit/internal/repository"
)

const bookingSelect = `
        SELECT b.id, b.start_date, b.end_date, b.status,
               i.id AS item_id, i.name AS item_name, i.owner_id AS item_owner_id,
               u.id AS booker_id, u.name AS booker_name
        FROM bookings b
        JOIN items i ON i.id = b.item_id
        JOIN users u ON u.id = b.booker_id`

type BookingRepo struct {
	db db.DB
}

func NewBookingRepo(db db.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(ctx context.Context, booking *repository.Booking) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, booking.Start, booking.End, booking.ItemID, booking.BookerID, booking.Status).Scan(&id)
	return id, err
}

// GetForUser returns the booking only when userID is the booker or the item's
// owner; anyone else sees not-found.
func (r *BookingRepo) GetForUser(ctx context.Context, bookingID, userID int64) (*repository.BookingDetails, error) {
	var booking repository.BookingDetails
	err := r.db.Get(ctx, &booking, bookingSelect+`
        WHERE b.id = $1 AND (b.booker_id = $2 OR i.owner_id = $2)
    `, bookingID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// GetByIDAndOwnerTx is the owner-scoped find used by the approval flow. It
// runs on the caller's transaction so the find and the status write are
// atomic.
func (r *BookingRepo) GetByIDAndOwnerTx(ctx context.Context, tx db.Tx, bookingID, ownerID int64) (*repository.BookingDetails, error) {
	var booking repository.BookingDetails
	err := tx.Get(ctx, &booking, bookingSelect+`
        WHERE b.id = $1 AND i.owner_id = $2
    `, bookingID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, bookingID int64, status repository.BookingStatus) error {
	_, err := tx.Exec(ctx, "UPDATE bookings SET status = $1 WHERE id = $2", status, bookingID)
	return err
}

func (r *BookingRepo) ListByBooker(ctx context.Context, bookerID int64, filter repository.BookingFilter,
	limit, offset int64) ([]repository.BookingDetails, error) {
	return r.list(ctx, "b.booker_id", bookerID, filter, limit, offset)
}

func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID int64, filter repository.BookingFilter,
	limit, offset int64) ([]repository.BookingDetails, error) {
	return r.list(ctx, "i.owner_id", ownerID, filter, limit, offset)
}

func (r *BookingRepo) list(ctx context.Context, column string, userID int64, filter repository.BookingFilter,
	limit, offset int64) ([]repository.BookingDetails, error) {
	query := bookingSelect + " WHERE " + column + " = $1"

	args := []interface{}{userID}

	switch filter {
	case repository.FilterAll:
	case repository.FilterCurrent:
		query += " AND b.start_date <= NOW() AND b.end_date >= NOW()"
	case repository.FilterPast:
		query += " AND b.end_date < NOW()"
	case repository.FilterFuture:
		query += " AND b.start_date > NOW()"
	case repository.FilterWaiting, repository.FilterRejected:
		query += " AND b.status = $2"
		args = append(args, repository.BookingStatus(filter))
	}

	query += fmt.Sprintf(" ORDER BY b.end_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var bookings []repository.BookingDetails
	err := r.db.Select(ctx, &bookings, query, args...)
	return bookings, err
}

// ListByItems fetches every booking of the given items, newest end first, for
// computing last/next booking attachments on item views.
func (r *BookingRepo) ListByItems(ctx context.Context, itemIDs []int64) ([]repository.BookingDetails, error) {
	var bookings []repository.BookingDetails
	err := r.db.Select(ctx, &bookings, bookingSelect+`
        WHERE i.id = ANY($1)
        ORDER BY b.end_date DESC
    `, itemIDs)
	return bookings, err
}

// HasFinishedApproved reports whether the user has completed an approved
// rental of the item, the precondition for commenting on it.
func (r *BookingRepo) HasFinishedApproved(ctx context.Context, bookerID, itemID int64) (bool, error) {
	var exists bool
	err := r.db.Get(ctx, &exists, `
        SELECT EXISTS (
            SELECT 1 FROM bookings
            WHERE booker_id = $1 AND item_id = $2 AND status = $3 AND end_date < NOW()
        )
    `, bookerID, itemID, repository.StatusApproved)
	return exists, err
}
