package support

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

// CreateTicketInput raises a new support ticket.
type CreateTicketInput struct {
	Subject     string `json:"subject" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=10,max=5000"`
}

// CreateLeadInput is a public sales enquiry.
type CreateLeadInput struct {
	Name    string  `json:"name" validate:"required,min=1,max=120"`
	Email   string  `json:"email" validate:"omitempty,email"`
	Phone   string  `json:"phone" validate:"required,max=20"`
	Message *string `json:"message" validate:"omitempty,max=2000"`
	Source  string  `json:"source" validate:"omitempty,max=100"`
}

// FAQInput creates or replaces a published FAQ entry.
type FAQInput struct {
	Question  string `json:"question" validate:"required,min=3,max=500"`
	Answer    string `json:"answer" validate:"required,min=1,max=5000"`
	Category  string `json:"category" validate:"omitempty,max=100"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// Service covers tickets, FAQs, and inbound leads.
type Service interface {
	CreateTicket(ctx context.Context, userID uuid.UUID, input CreateTicketInput) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, userID uuid.UUID, isAdmin bool) ([]models.SupportTicket, error)
	UpdateTicketStatus(ctx context.Context, ticketID uuid.UUID, status string) (*models.SupportTicket, error)

	ListFAQs(ctx context.Context, category string, includeInactive bool) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, input FAQInput) (*models.FAQ, error)
	UpdateFAQ(ctx context.Context, id uuid.UUID, input FAQInput) error
	DeleteFAQ(ctx context.Context, id uuid.UUID) error

	CreateLead(ctx context.Context, input CreateLeadInput) (*models.Lead, error)
	ListLeads(ctx context.Context, contacted *bool) ([]models.Lead, error)
	MarkLeadContacted(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	CreateTicket(ctx context.Context, ticket *models.SupportTicket) error
	FindTicket(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	ListTicketsByUser(ctx context.Context, userID uuid.UUID) ([]models.SupportTicket, error)
	ListAllTickets(ctx context.Context) ([]models.SupportTicket, error)
	UpdateTicket(ctx context.Context, id uuid.UUID, updates map[string]any) error

	ListFAQs(ctx context.Context, category string, activeOnly bool) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, faq *models.FAQ) error
	UpdateFAQ(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	DeleteFAQ(ctx context.Context, id uuid.UUID) (bool, error)

	CreateLead(ctx context.Context, lead *models.Lead) error
	ListLeads(ctx context.Context, contactedOnly *bool) ([]models.Lead, error)
	MarkLeadContacted(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo repository
}

// NewService wires the support service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("support repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateTicket(ctx context.Context, userID uuid.UUID, input CreateTicketInput) (*models.SupportTicket, error) {
	ticket := &models.SupportTicket{
		UserID:      userID,
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		Status:      enums.TicketStatusOpen,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ticket")
	}
	return ticket, nil
}

func (s *service) ListTickets(ctx context.Context, userID uuid.UUID, isAdmin bool) ([]models.SupportTicket, error) {
	var (
		tickets []models.SupportTicket
		err     error
	)
	if isAdmin {
		tickets, err = s.repo.ListAllTickets(ctx)
	} else {
		tickets, err = s.repo.ListTicketsByUser(ctx, userID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tickets")
	}
	return tickets, nil
}

func (s *service) UpdateTicketStatus(ctx context.Context, ticketID uuid.UUID, status string) (*models.SupportTicket, error) {
	parsed, err := enums.ParseTicketStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	ticket, err := s.repo.FindTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ticket")
	}

	if err := s.repo.UpdateTicket(ctx, ticketID, map[string]any{"status": parsed}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ticket")
	}
	ticket.Status = parsed
	return ticket, nil
}

func (s *service) ListFAQs(ctx context.Context, category string, includeInactive bool) ([]models.FAQ, error) {
	faqs, err := s.repo.ListFAQs(ctx, category, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list faqs")
	}
	return faqs, nil
}

func (s *service) CreateFAQ(ctx context.Context, input FAQInput) (*models.FAQ, error) {
	faq := &models.FAQ{
		Question:  strings.TrimSpace(input.Question),
		Answer:    strings.TrimSpace(input.Answer),
		Category:  strings.TrimSpace(input.Category),
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		faq.IsActive = *input.IsActive
	}
	if err := s.repo.CreateFAQ(ctx, faq); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create faq")
	}
	return faq, nil
}

func (s *service) UpdateFAQ(ctx context.Context, id uuid.UUID, input FAQInput) error {
	updates := map[string]any{
		"question":   strings.TrimSpace(input.Question),
		"answer":     strings.TrimSpace(input.Answer),
		"category":   strings.TrimSpace(input.Category),
		"sort_order": input.SortOrder,
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	updated, err := s.repo.UpdateFAQ(ctx, id, updates)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update faq")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	return nil
}

func (s *service) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteFAQ(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete faq")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	return nil
}

func (s *service) CreateLead(ctx context.Context, input CreateLeadInput) (*models.Lead, error) {
	lead := &models.Lead{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   strings.TrimSpace(input.Phone),
		Message: input.Message,
		Source:  strings.TrimSpace(input.Source),
	}
	if err := s.repo.CreateLead(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create lead")
	}
	return lead, nil
}

func (s *service) ListLeads(ctx context.Context, contacted *bool) ([]models.Lead, error) {
	leads, err := s.repo.ListLeads(ctx, contacted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	return leads, nil
}

func (s *service) MarkLeadContacted(ctx context.Context, id uuid.UUID) error {
	marked, err := s.repo.MarkLeadContacted(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark lead contacted")
	}
	if !marked {
		return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	return nil
}
