package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/moremori/moremori-api/internal/models"
	"github.com/moremori/moremori-api/internal/utils"
)

// contactStore is the data access surface ContactService needs. Submissions
// are write-once, so there is no update or delete.
type contactStore interface {
	List(ctx context.Context) ([]*models.ContactSubmission, error)
	Get(ctx context.Context, id string) (*models.ContactSubmission, error)
	Create(ctx context.Context, sub *models.ContactSubmission) error
}

// ContactService implements the contact resource: the public contact form
// on write, the admin inbox on read.
type ContactService struct {
	store contactStore
}

// NewContactService constructs a ContactService.
func NewContactService(store contactStore) *ContactService {
	return &ContactService{store: store}
}

// CreateContactRequest represents a public contact form submission.
type CreateContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
}

// List returns all submissions, newest first.
func (s *ContactService) List(ctx context.Context) (*Result, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	if subs == nil {
		subs = []*models.ContactSubmission{}
	}
	return &Result{Data: subs, Message: "Contact submissions retrieved"}, nil
}

// Get returns one submission by id.
func (s *ContactService) Get(ctx context.Context, id string) (*Result, error) {
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Contact submission")
	}
	return &Result{Data: sub, Message: "Contact submission retrieved"}, nil
}

// Create validates and stores a submission, capturing the caller's IP and
// user agent from the request metadata.
func (s *ContactService) Create(ctx context.Context, req *Request) (*Result, error) {
	var in CreateContactRequest
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, utils.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.BadRequest("Name is required")
	}
	if !utils.ValidEmail(in.Email) {
		return nil, utils.BadRequest("A valid email address is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, utils.BadRequest("Message is required")
	}

	sub := &models.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   strVal(in.Phone, ""),
		Subject: strVal(in.Subject, "Website contact"),
		Message: in.Message,
	}
	if req.IPAddress != "" {
		sub.IPAddress = &req.IPAddress
	}
	if req.UserAgent != "" {
		sub.UserAgent = &req.UserAgent
	}

	if err := s.store.Create(ctx, sub); err != nil {
		return nil, utils.Upstream("Database error", err)
	}
	return &Result{Data: sub, Message: "Message sent successfully"}, nil
}

// Update is not supported for contact submissions.
func (s *ContactService) Update(ctx context.Context, id string, body []byte) (*Result, error) {
	return nil, errUnsupported("update", "contact")
}

// Delete is not supported for contact submissions.
func (s *ContactService) Delete(ctx context.Context, id string) (*Result, error) {
	return nil, errUnsupported("delete", "contact")
}
