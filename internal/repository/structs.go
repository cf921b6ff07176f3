package repository

import (
	"errors"
	"time"
)

var (
	ErrObjectNotFound = errors.New("not found")
	ErrEmailTaken     = errors.New("email already in use")
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingFilter narrows booking listings; values mirror the query states the
// HTTP surface accepts (there is deliberately no APPROVED filter).
type BookingFilter string

const (
	FilterAll      BookingFilter = "ALL"
	FilterCurrent  BookingFilter = "CURRENT"
	FilterPast     BookingFilter = "PAST"
	FilterFuture   BookingFilter = "FUTURE"
	FilterWaiting  BookingFilter = "WAITING"
	FilterRejected BookingFilter = "REJECTED"
)

type User struct {
	ID    int64  `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
}

type Item struct {
	ID          int64  `db:"id"`
	OwnerID     int64  `db:"owner_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Available   bool   `db:"available"`
	RequestID   *int64 `db:"request_id"`
}

type ItemRequest struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	RequesterID int64     `db:"requester_id"`
	Created     time.Time `db:"created"`
}

type Booking struct {
	ID       int64         `db:"id"`
	Start    time.Time     `db:"start_date"`
	End      time.Time     `db:"end_date"`
	ItemID   int64         `db:"item_id"`
	BookerID int64         `db:"booker_id"`
	Status   BookingStatus `db:"status"`
}

// BookingDetails is a booking row joined with its item and booker, the shape
// every read path needs to decide visibility and render responses.
type BookingDetails struct {
	ID          int64         `db:"id"`
	Start       time.Time     `db:"start_date"`
	End         time.Time     `db:"end_date"`
	Status      BookingStatus `db:"status"`
	ItemID      int64         `db:"item_id"`
	ItemName    string        `db:"item_name"`
	ItemOwnerID int64         `db:"item_owner_id"`
	BookerID    int64         `db:"booker_id"`
	BookerName  string        `db:"booker_name"`
}

type Comment struct {
	ID       int64     `db:"id"`
	Text     string    `db:"text"`
	ItemID   int64     `db:"item_id"`
	AuthorID int64     `db:"author_id"`
	Created  time.Time `db:"created"`
}

// CommentDetails carries the author name for rendering.
type CommentDetails struct {
	ID         int64     `db:"id"`
	Text       string    `db:"text"`
	ItemID     int64     `db:"item_id"`
	AuthorName string    `db:"author_name"`
	Created    time.Time `db:"created"`
}
