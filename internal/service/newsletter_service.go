package service

import (
	"context"
	"encoding/json"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/repository"
	"github.com/moremori/moremori-api/internal/utils"
)

// newsletterStore is the data access surface NewsletterService needs.
type newsletterStore interface {
	List(ctx context.Context) ([]*models.NewsletterSubscription, error)
	Get(ctx context.Context, id string) (*models.NewsletterSubscription, error)
	Create(ctx context.Context, sub *models.NewsletterSubscription) error
}

// NewsletterService implements the newsletter resource. Subscribing twice
// with the same email is treated as success so the signup form never leaks
// whether an address is already on the list.
type NewsletterService struct {
	store newsletterStore
}

// NewNewsletterService constructs a NewsletterService.
func NewNewsletterService(store newsletterStore) *NewsletterService {
	return &NewsletterService{store: store}
}

// CreateNewsletterRequest represents a newsletter signup.
type CreateNewsletterRequest struct {
	Email  string  `json:"email"`
	Name   *string `json:"name"`
	Source *string `json:"source"`
}

// List returns all active subscriptions, newest first.
func (s *NewsletterService) List(ctx context.Context) (*Result, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	if subs == nil {
		subs = []*models.NewsletterSubscription{}
	}
	return &Result{Data: subs, Message: "Subscriptions retrieved"}, nil
}

// Get returns one subscription by id.
func (s *NewsletterService) Get(ctx context.Context, id string) (*Result, error) {
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Subscription")
	}
	return &Result{Data: sub, Message: "Subscription retrieved"}, nil
}

// Create validates the email and stores the subscription. A unique
// violation on the email column is reported as success.
func (s *NewsletterService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateNewsletterRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if !utils.ValidEmail(in.Email) {
		return nil, utils.BadRequest("A valid email address is required")
	}

	sub := &models.NewsletterSubscription{
		Email:    in.Email,
		Name:     strVal(in.Name, ""),
		Source:   strVal(in.Source, "website"),
		IsActive: true,
	}
	if err := s.store.Create(ctx, sub); err != nil {
		if repository.IsUniqueViolation(err) {
			return &Result{Message: "Email already registered"}, nil
		}
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: sub, Message: "Subscribed successfully"}, nil
}

// Update is not supported for newsletter subscriptions.
func (s *NewsletterService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	return nil, errUnsupported("update", "newsletter")
}

// Delete is not supported for newsletter subscriptions.
func (s *NewsletterService) Delete(ctx context.Context, id string) (*Result, error) {
	return nil, errUnsupported("delete", "newsletter")
}
