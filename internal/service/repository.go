//go:generate mockgen -source ./repository.go -destination=./mocks/repository.go -package=mock_repository
package service

import (
	"context"

	"shareit/internal/db"
	"shareit/internal/repository"
)

// Transactor begins a storage transaction for flows that must read and write
// atomically.
type Transactor interface {
	BeginTx(ctx context.Context) (db.Tx, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *repository.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.User, error)
	GetAll(ctx context.Context) ([]repository.User, error)
	Update(ctx context.Context, user *repository.User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *repository.Item) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.Item, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*repository.Item, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]repository.Item, error)
	Update(ctx context.Context, item *repository.Item) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error
	Search(ctx context.Context, text string) ([]repository.Item, error)
	GetByRequestIDs(ctx context.Context, requestIDs []int64) ([]repository.Item, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *repository.Booking) (int64, error)
	GetForUser(ctx context.Context, bookingID, userID int64) (*repository.BookingDetails, error)
	GetByIDAndOwnerTx(ctx context.Context, tx db.Tx, bookingID, ownerID int64) (*repository.BookingDetails, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, bookingID int64, status repository.BookingStatus) error
	ListByBooker(ctx context.Context, bookerID int64, filter repository.BookingFilter, limit, offset int64) ([]repository.BookingDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, filter repository.BookingFilter, limit, offset int64) ([]repository.BookingDetails, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]repository.BookingDetails, error)
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64) (bool, error)
}

type RequestRepository interface {
	Create(ctx context.Context, request *repository.ItemRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.ItemRequest, error)
	GetByRequester(ctx context.Context, requesterID int64) ([]repository.ItemRequest, error)
	GetByOtherRequesters(ctx context.Context, requesterID, limit, offset int64) ([]repository.ItemRequest, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *repository.Comment) (int64, error)
	GetByItem(ctx context.Context, itemID int64) ([]repository.CommentDetails, error)
}
