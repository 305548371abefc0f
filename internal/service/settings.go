package service

import (
	"context"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/logger"
	"commonage-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) LandApplicationsOpen(ctx context.Context) (bool, error) {
	return s.settingsRepo.GetBool(ctx, domain.SettingLandApplicationsOpen)
}

func (s *settingsService) SetLandApplicationsOpen(ctx context.Context, actor domain.Actor, open bool) error {
	if !actor.Staff {
		return domain.ErrForbidden
	}
	if err := s.settingsRepo.SetBool(ctx, domain.SettingLandApplicationsOpen, open); err != nil {
		return err
	}
	logger.Info("land applications flag changed", "open", open, "changed_by", actor.Subject)
	return nil
}
