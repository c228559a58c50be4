package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/slug"
	"go.uber.org/zap"
)

// slugAttempts bounds retries when a generated slug collides
const slugAttempts = 3

// ListingService manages jobs and internships
type ListingService struct {
	listings repository.ListingStore
}

func NewListingService(listings repository.ListingStore) *ListingService {
	return &ListingService{listings: listings}
}

// List is the admin list for one kind
func (s *ListingService) List(ctx context.Context, filter models.ListingFilter, params models.ListParams) (*models.ListingListResponse, error) {
	listings, total, err := s.listings.List(ctx, filter, params)
	if err != nil {
		logger.Error("Failed to list listings", zap.String("kind", string(filter.Kind)), zap.Error(err))
		return nil, err
	}
	return &models.ListingListResponse{
		Listings:   listings,
		Pagination: params.Page.Meta(total),
	}, nil
}

// ListPublic returns active listings with featured ones first
func (s *ListingService) ListPublic(ctx context.Context, filter models.ListingFilter, params models.ListParams) (*models.ListingListResponse, error) {
	filter.Status = models.ListingActive
	filter.FeaturedFirst = true
	return s.List(ctx, filter, params)
}

func (s *ListingService) Get(ctx context.Context, kind models.ListingKind, id string) (*models.Listing, error) {
	return s.listings.GetByID(ctx, kind, id)
}

// GetPublic finds an active listing by slug
func (s *ListingService) GetPublic(ctx context.Context, kind models.ListingKind, listingSlug string) (*models.Listing, error) {
	return s.listings.GetActiveBySlug(ctx, kind, listingSlug)
}

// Create stores a listing under a generated slug, retrying on the rare
// suffix collision
func (s *ListingService) Create(ctx context.Context, kind models.ListingKind, req *models.ListingRequest, createdBy string) (*models.Listing, error) {
	if err := checkListing(kind, req); err != nil {
		return nil, err
	}

	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		var listing *models.Listing
		listingSlug := slug.ForListing(req.Title, req.Company, uuid.NewString())
		listing, err = s.listings.Create(ctx, kind, listingSlug, req, createdBy)
		if err == nil {
			logger.Info("Listing created",
				zap.String("kind", string(kind)),
				zap.String("listing_id", listing.ID),
				zap.String("slug", listing.Slug))
			return listing, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to create listing", zap.String("kind", string(kind)), zap.Error(err))
			return nil, err
		}
	}
	return nil, err
}

// Update replaces the editable fields. The slug is kept so shared links
// stay valid.
func (s *ListingService) Update(ctx context.Context, kind models.ListingKind, id string, req *models.ListingRequest) (*models.Listing, error) {
	if err := checkListing(kind, req); err != nil {
		return nil, err
	}
	listing, err := s.listings.Update(ctx, kind, id, req)
	if err != nil {
		return nil, err
	}
	logger.Info("Listing updated", zap.String("kind", string(kind)), zap.String("listing_id", id))
	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, kind models.ListingKind, id string) error {
	if err := s.listings.Delete(ctx, kind, id); err != nil {
		return err
	}
	logger.Info("Listing deleted", zap.String("kind", string(kind)), zap.String("listing_id", id))
	return nil
}

// Bulk applies one action to each selected listing independently
func (s *ListingService) Bulk(ctx context.Context, kind models.ListingKind, req *models.BulkActionRequest) (*models.BulkActionResult, error) {
	return runBulk(ctx, string(kind), req, models.ListingBulkActions, func(ctx context.Context, id string) error {
		switch req.Action {
		case models.BulkActivate:
			return s.listings.SetStatus(ctx, kind, id, models.ListingActive)
		case models.BulkDeactivate:
			return s.listings.SetStatus(ctx, kind, id, models.ListingDraft)
		case models.BulkFeature:
			return s.listings.SetFeatured(ctx, kind, id, true)
		case models.BulkUnfeature:
			return s.listings.SetFeatured(ctx, kind, id, false)
		default:
			return s.listings.Delete(ctx, kind, id)
		}
	})
}

func checkListing(kind models.ListingKind, req *models.ListingRequest) error {
	if !kind.IsValid() {
		return apperrors.InvalidInputError("kind", "must be job or internship")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	if req.Title == "" {
		return apperrors.InvalidInputError("title", "is required")
	}
	if kind == models.KindJob && req.DurationWeeks != nil {
		return apperrors.InvalidInputError("durationWeeks", "only applies to internships")
	}
	return nil
}
