package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shareit/internal/repository"
)

type RequestService struct {
	requests RequestRepository
	users    UserRepository
	items    ItemRepository
}

func NewRequestService(requests RequestRepository, users UserRepository, items ItemRepository) *RequestService {
	return &RequestService{requests: requests, users: users, items: items}
}

func (s *RequestService) Create(ctx context.Context, userID int64, input RequestInput) (*RequestView, error) {
	if input.Description == "" {
		return nil, BadRequestf("request description must not be empty")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	request := &repository.ItemRequest{
		Description: input.Description,
		RequesterID: userID,
		Created:     time.Now(),
	}
	id, err := s.requests.Create(ctx, request)
	if err != nil {
		return nil, err
	}
	zap.L().Info("item request created", zap.Int64("request_id", id), zap.Int64("requester_id", userID))

	return &RequestView{
		ID:          id,
		Description: request.Description,
		Created:     request.Created,
		Items:       []ItemView{},
	}, nil
}

// Own returns the caller's requests, oldest first, with the items listed
// against each of them.
func (s *RequestService) Own(ctx context.Context, userID int64) ([]RequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.GetByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// All pages through requests created by other users.
func (s *RequestService) All(ctx context.Context, userID, from, size int64) ([]RequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	limit, offset := pageWindow(from, size)
	requests, err := s.requests.GetByOtherRequesters(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (*RequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("request %d not found", requestID)
		}
		return nil, err
	}
	views, err := s.withItems(ctx, []repository.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFoundf("user %d not found", userID)
	}
	return nil
}

func (s *RequestService) withItems(ctx context.Context, requests []repository.ItemRequest) ([]RequestView, error) {
	views := make([]RequestView, 0, len(requests))
	if len(requests) == 0 {
		return views, nil
	}

	requestIDs := make([]int64, 0, len(requests))
	for _, r := range requests {
		requestIDs = append(requestIDs, r.ID)
	}
	items, err := s.items.GetByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]ItemView)
	for i := range items {
		if items[i].RequestID == nil {
			continue
		}
		byRequest[*items[i].RequestID] = append(byRequest[*items[i].RequestID], newItemView(&items[i]))
	}

	for _, r := range requests {
		itemViews := byRequest[r.ID]
		if itemViews == nil {
			itemViews = []ItemView{}
		}
		views = append(views, RequestView{
			ID:          r.ID,
			Description: r.Description,
			Created:     r.Created,
			Items:       itemViews,
		})
	}
	return views, nil
}
