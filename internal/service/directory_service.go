package service

import (
	"context"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/repository"
)

// DirectoryService exposes the location and group directory so report
// scopes are discoverable.
type DirectoryService struct {
	dir *repository.DirectoryRepository
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(dir *repository.DirectoryRepository) *DirectoryService {
	return &DirectoryService{dir: dir}
}

// ListBuildings retrieves all buildings.
func (s *DirectoryService) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return s.dir.ListBuildings(ctx)
}

// ListDevices retrieves all gateways.
func (s *DirectoryService) ListDevices(ctx context.Context) ([]models.Device, error) {
	return s.dir.ListDevices(ctx)
}

// ListPeople retrieves all tracked people.
func (s *DirectoryService) ListPeople(ctx context.Context) ([]models.Person, error) {
	return s.dir.ListPeople(ctx)
}

// ListGroups retrieves all person groups.
func (s *DirectoryService) ListGroups(ctx context.Context) ([]models.PersonGroup, error) {
	return s.dir.ListGroups(ctx)
}
