package service

import (
	"context"

	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/webhook"
	"github.com/sirupsen/logrus"
)

// BarristaService validates association members by phone
type BarristaService interface {
	ValidatePhone(context.Context, string) (pricing.Classification, error)
}

type barristaService struct {
	webhookClient webhook.Client
}

func NewBarristaService(webhookClient webhook.Client) BarristaService {
	return &barristaService{webhookClient: webhookClient}
}

func (s *barristaService) ValidatePhone(ctx context.Context, phone string) (pricing.Classification, error) {
	resp, err := s.webhookClient.LookupPhone(ctx, phone)
	if err != nil {
		return pricing.Classification{}, err
	}

	cls, err := pricing.ClassifyBarrista(resp)
	if err != nil {
		return pricing.Classification{}, err
	}

	if cls.Blocked {
		logrus.WithField("phone", phone).Info("phone lookup blocked registration")
	}
	return cls, nil
}
