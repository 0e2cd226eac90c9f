package service

import (
	"context"

	"hotelier/internal/domain"
	"hotelier/internal/models"
)

// CatalogService serves the seeded hotel/room catalog. Reads only.
type CatalogService struct {
	repo domain.Repository
}

func NewCatalogService(repo domain.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.repo.GetHotels(ctx)
}

func (s *CatalogService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	return s.repo.GetHotel(ctx, id)
}

func (s *CatalogService) ListRoomsByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	if _, err := s.repo.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.repo.GetRoomsByHotel(ctx, hotelID)
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.repo.GetRooms(ctx)
}
