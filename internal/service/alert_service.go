package service

import (
	"context"
	"fmt"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/repository"
)

// AlertService handles listing of raw alert events.
type AlertService struct {
	alerts *repository.AlertRepository
}

// NewAlertService creates a new alert service.
func NewAlertService(alerts *repository.AlertRepository) *AlertService {
	return &AlertService{alerts: alerts}
}

// ListAlerts retrieves alert events matching the filter, most recent
// first.
func (s *AlertService) ListAlerts(ctx context.Context, f models.AlertFilter) ([]models.AlertEvent, error) {
	if f.FromTime > 0 && f.ToTime > 0 && f.ToTime <= f.FromTime {
		return nil, fmt.Errorf("%w: to must be after from", models.ErrInvalidWindow)
	}
	if f.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", models.ErrInvalidParameter)
	}
	if f.Limit == 0 {
		f.Limit = 100
	}
	return s.alerts.ListAlerts(ctx, f)
}
