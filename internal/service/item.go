package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"shareit/internal/metrics"
	"shareit/internal/repository"
)

type ItemService struct {
	items    ItemRepository
	users    UserRepository
	bookings BookingRepository
	comments CommentRepository
	requests RequestRepository
}

func NewItemService(items ItemRepository, users UserRepository, bookings BookingRepository,
	comments CommentRepository, requests RequestRepository) *ItemService {
	return &ItemService{items: items, users: users, bookings: bookings, comments: comments, requests: requests}
}

func (s *ItemService) Add(ctx context.Context, userID int64, input ItemInput) (*ItemView, error) {
	if input.Name == nil || *input.Name == "" {
		return nil, BadRequestf("item name must not be empty")
	}
	if input.Description == nil || *input.Description == "" {
		return nil, BadRequestf("item description must not be empty")
	}
	if input.Available == nil {
		return nil, BadRequestf("item availability must be set")
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFoundf("user %d not found", userID)
	}
	if input.RequestID != nil {
		found, err := s.requests.Exists(ctx, *input.RequestID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, NotFoundf("request %d not found", *input.RequestID)
		}
	}

	item := &repository.Item{
		OwnerID:     userID,
		Name:        *input.Name,
		Description: *input.Description,
		Available:   *input.Available,
		RequestID:   input.RequestID,
	}
	id, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	zap.L().Info("item created", zap.Int64("item_id", id), zap.Int64("owner_id", userID))
	view := newItemView(item)
	return &view, nil
}

// Update patches name, description and availability. The lookup is scoped to
// the owner, so a non-owner caller gets not-found.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, input ItemInput) (*ItemView, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFoundf("user %d not found", userID)
	}

	item, err := s.items.GetByIDAndOwner(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("item %d not found", itemID)
		}
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	view := newItemView(item)
	return &view, nil
}

func (s *ItemService) Delete(ctx context.Context, userID, itemID int64) error {
	return s.items.DeleteByIDAndOwner(ctx, itemID, userID)
}

// ItemsForOwner lists the caller's items with their last and next bookings.
func (s *ItemService) ItemsForOwner(ctx context.Context, userID int64) ([]ItemDetailView, error) {
	items, err := s.items.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemDetailView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	bookings, err := s.bookings.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	byItem := make(map[int64][]repository.BookingDetails)
	for _, b := range bookings {
		byItem[b.ItemID] = append(byItem[b.ItemID], b)
	}

	now := time.Now()
	for i := range items {
		view := ItemDetailView{ItemView: newItemView(&items[i])}
		view.LastBooking, view.NextBooking = nearestBookings(byItem[items[i].ID], now)
		views = append(views, view)
	}
	return views, nil
}

// Get returns the item with its comments; the booking attachments are only
// visible to the item's owner.
func (s *ItemService) Get(ctx context.Context, userID, itemID int64) (*ItemDetailView, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("item %d not found", itemID)
		}
		return nil, err
	}

	comments, err := s.comments.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &ItemDetailView{ItemView: newItemView(item), Comments: newCommentViews(comments)}
	if item.OwnerID == userID {
		bookings, err := s.bookings.ListByItems(ctx, []int64{itemID})
		if err != nil {
			return nil, err
		}
		view.LastBooking, view.NextBooking = nearestBookings(bookings, time.Now())
	}
	return view, nil
}

func (s *ItemService) Search(ctx context.Context, text string) ([]ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}
	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, newItemView(&items[i]))
	}
	return views, nil
}

// CreateComment lets a user who completed an approved rental of the item
// leave a comment on it.
func (s *ItemService) CreateComment(ctx context.Context, userID, itemID int64, input CommentInput) (*CommentView, error) {
	rented, err := s.bookings.HasFinishedApproved(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, BadRequestf("item not rented by you")
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("user %d not found", userID)
		}
		return nil, err
	}

	comment := &repository.Comment{
		Text:     input.Text,
		ItemID:   itemID,
		AuthorID: userID,
		Created:  time.Now(),
	}
	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_comment").Inc()
		return nil, err
	}
	metrics.CommentsCreatedTotal.Inc()

	return &CommentView{
		ID:         id,
		Text:       comment.Text,
		AuthorName: author.Name,
		Created:    comment.Created,
	}, nil
}

// nearestBookings walks bookings sorted by end desc and picks the last
// booking (current or already finished) and the next one starting after it.
func nearestBookings(bookings []repository.BookingDetails, now time.Time) (last, next *BookingRef) {
	var lastBooking *repository.BookingDetails
	for i := range bookings {
		b := &bookings[i]
		if (b.Start.Before(now) && b.End.After(now)) || b.End.Before(now) {
			lastBooking = b
			break
		}
	}
	if lastBooking == nil {
		return nil, nil
	}

	var nextBooking *repository.BookingDetails
	for i := range bookings {
		b := &bookings[i]
		if b.Start.After(lastBooking.End) && (nextBooking == nil || b.Start.Before(nextBooking.Start)) {
			nextBooking = b
		}
	}

	last = &BookingRef{ID: lastBooking.ID, BookerID: lastBooking.BookerID}
	if nextBooking != nil {
		next = &BookingRef{ID: nextBooking.ID, BookerID: nextBooking.BookerID}
	}
	return last, next
}

func newItemView(item *repository.Item) ItemView {
	return ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

func newCommentViews(comments []repository.CommentDetails) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.Created})
	}
	return views
}
