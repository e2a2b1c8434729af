package listings

import (
	"context"
	"log"

	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/repository"
)

type ListingUseCase interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, id, requesterID int64, update domain.ListingUpdate) (*domain.Listing, error)
	Delete(ctx context.Context, id, requesterID int64) error
}

type Cache interface {
	GetSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error)
	SetSearch(ctx context.Context, criteria domain.SearchCriteria, listings []domain.Listing) error
	InvalidateSearches(ctx context.Context) error
}

type ListingService struct {
	repo  repository.ListingRepository
	cache Cache
}

func NewListingService(repo repository.ListingRepository, cache Cache) *ListingService {
	return &ListingService{repo: repo, cache: cache}
}

func (s *ListingService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, criteria); err == nil && cached != nil {
			return cached, nil
		}
	}

	listings, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, criteria, listings)
	}
	return listings, nil
}

func (s *ListingService) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ListingService) Create(ctx context.Context, listing *domain.Listing) error {
	listing.IsAvailable = true
	if err := s.repo.Create(ctx, listing); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ListingService) Update(ctx context.Context, id, requesterID int64, update domain.ListingUpdate) (*domain.Listing, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.HostID != requesterID {
		return nil, domain.ErrNotOwner
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *ListingService) Delete(ctx context.Context, id, requesterID int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.HostID != requesterID {
		return domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ListingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSearches(ctx); err != nil {
		log.Printf("invalidate search cache: %v", err)
	}
}

var _ ListingUseCase = (*ListingService)(nil)
