package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/lexcongreso/registration/internal/errors"
	"github.com/lexcongreso/registration/internal/events"
	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	rfcMinLen = 12
	rfcMaxLen = 13
)

// LeadPolicy is what differs between the registration forms
type LeadPolicy struct {
	CategoryID             *int
	RequirePhoneValidation bool
	RequireRFC             bool
}

// Submission is the outcome of a lead submission
type Submission struct {
	CustomerID     string                  `json:"customerId"`
	Created        bool                    `json:"created"`
	Classification *pricing.Classification `json:"classification,omitempty"`
}

// LeadService registers attendees before they pay
type LeadService interface {
	Submit(context.Context, model.Lead, LeadPolicy) (*Submission, error)
}

type leadService struct {
	customerRps repository.CustomerRepository
	barristaSvc BarristaService
	publisher   events.Publisher
}

func NewLeadService(customerRps repository.CustomerRepository, barristaSvc BarristaService, publisher events.Publisher) LeadService {
	return &leadService{customerRps: customerRps, barristaSvc: barristaSvc, publisher: publisher}
}

func (s *leadService) Submit(ctx context.Context, lead model.Lead, policy LeadPolicy) (*Submission, error) {
	if policy.RequireRFC {
		if lead.RFC == nil {
			return nil, apperrors.NewBusinessErr("rfc", apperrors.CodeRFCRequired)
		}

		rfc := strings.ToUpper(strings.TrimSpace(*lead.RFC))
		if len(rfc) < rfcMinLen || len(rfc) > rfcMaxLen {
			return nil, apperrors.NewBusinessErr("rfc", apperrors.CodeRFCRequired)
		}
		lead.RFC = &rfc
	}

	if policy.CategoryID != nil {
		lead.CustomerCategoryFK = policy.CategoryID
	}

	sub := &Submission{}
	if policy.RequirePhoneValidation {
		cls, err := s.barristaSvc.ValidatePhone(ctx, lead.MobilePhone)
		if err != nil {
			return nil, err
		}

		if cls.Blocked {
			return nil, apperrors.NewBusinessErr("mobile_phone", apperrors.CodePhoneBlocked)
		}

		categoryID := cls.CustomerCategoryID
		lead.CustomerCategoryFK = &categoryID
		sub.Classification = &cls
	}

	id, created, err := s.upsert(ctx, lead, true)
	if err != nil {
		return nil, err
	}
	sub.CustomerID = id
	sub.Created = created

	e := events.LeadSubmitted{CustomerID: id, Email: lead.Email, CategoryID: lead.CustomerCategoryFK, Created: created}
	if err := s.publisher.LeadSubmitted(ctx, e); err != nil {
		logrus.Errorf("failed to publish lead %s submission - %v", id, err)
	}

	return sub, nil
}

// upsert creates a lead or refreshes one still in Lead status, an insert losing
// the race on the email index looks the customer up again once when retry is set
func (s *leadService) upsert(ctx context.Context, lead model.Lead, retry bool) (string, bool, error) {
	existing, err := s.customerRps.FindByEmail(ctx, lead.Email)
	if err != nil {
		logrus.Warnf("failed to look up customer by email, registering as new - %v", err)
		existing = nil
	}

	if existing == nil {
		c := &model.Customer{
			ID:                 uuid.NewString(),
			FirstName:          lead.FirstName,
			LastName:           lead.LastName,
			Email:              lead.Email,
			MobilePhone:        lead.MobilePhone,
			Status:             model.StatusLead,
			CustomerCategoryFK: lead.CustomerCategoryFK,
			RFC:                lead.RFC,
		}

		if err := s.customerRps.Create(ctx, c); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) && retry {
				return s.upsert(ctx, lead, false)
			}
			return "", false, err
		}
		return c.ID, true, nil
	}

	if !existing.Status.IsLead() {
		return "", false, apperrors.NewBusinessErr("email", apperrors.CodeAlreadyRegistered)
	}

	existing.FirstName = lead.FirstName
	existing.LastName = lead.LastName
	existing.MobilePhone = lead.MobilePhone
	existing.CustomerCategoryFK = lead.CustomerCategoryFK
	if lead.RFC != nil {
		existing.RFC = lead.RFC
	}

	updated, err := s.customerRps.UpdateLead(ctx, existing)
	if err != nil {
		return "", false, err
	}

	if !updated {
		return "", false, apperrors.NewBusinessErr("email", apperrors.CodeAlreadyRegistered)
	}
	return existing.ID, false, nil
}
