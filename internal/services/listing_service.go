// Package services – ListingService
//
// ListingService serves the public feed of domain listings: the first page
// rendered with the listing page, and the offset/limit windows requested by
// "load more". Every call recounts the available rows, so a listing added or
// removed between calls can shift the window.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/repo"
	"github.com/tbourn/go-domain-finder/internal/utils"
)

// DefaultPageSize is the number of listings on the first render.
const DefaultPageSize = 6

// ListingRepo defines the repository contract required by ListingService.
type ListingRepo interface {
	// CountAvailable returns the number of listings visible in the feed.
	CountAvailable(ctx context.Context, db *gorm.DB) (int64, error)

	// ListAvailablePage returns a window of the feed in display order.
	ListAvailablePage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.DomainListing, error)

	// ListingStats returns the available count and price range.
	ListingStats(ctx context.Context, db *gorm.DB) (int64, *repo.PriceRange, error)

	// ListHomepageFeatured returns up to limit homepage listings.
	ListHomepageFeatured(ctx context.Context, db *gorm.DB, limit int) ([]domain.DomainListing, error)
}

// ListingPage is one window of the feed.
type ListingPage struct {
	Listings []domain.ListingView
	HasMore  bool
	Total    int64
}

// ListingOverview is what the listing page renders on first load.
type ListingOverview struct {
	Listings    []domain.ListingView
	DomainCount int64
	PriceRange  string
	HasMore     bool
	PageSize    int
}

// ListingService provides the listing feed.
type ListingService struct {
	DB       *gorm.DB
	Repo     ListingRepo
	PageSize int
}

// NewListingService constructs a ListingService. pageSize <= 0 selects
// DefaultPageSize.
func NewListingService(db *gorm.DB, r ListingRepo, pageSize int) *ListingService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListingService{DB: db, Repo: r, PageSize: pageSize}
}

func (s *ListingService) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

// ParsePageParams converts raw query values to an offset and limit. Missing
// values default to 0 and the page size; anything else that is not a
// non-negative integer yields ErrInvalidParameters.
func (s *ListingService) ParsePageParams(offsetRaw, limitRaw string) (offset, limit int, err error) {
	offset, err = utils.ParseNonNegativeInt(offsetRaw, 0)
	if err != nil {
		return 0, 0, ErrInvalidParameters
	}
	limit, err = utils.ParseNonNegativeInt(limitRaw, s.pageSize())
	if err != nil {
		return 0, 0, ErrInvalidParameters
	}
	return offset, limit, nil
}

// Page returns the listings in [offset, offset+limit) of the feed.
// HasMore is true iff offset+limit is below the current available count.
func (s *ListingService) Page(ctx context.Context, offset, limit int) (*ListingPage, error) {
	tr := otel.Tracer("services/ListingService")
	ctx, span := tr.Start(ctx, "Page",
		trace.WithAttributes(
			attribute.Int("offset", offset),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if offset < 0 || limit < 0 {
		return nil, ErrInvalidParameters
	}

	total, err := s.Repo.CountAvailable(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	out := &ListingPage{
		Listings: []domain.ListingView{},
		HasMore:  int64(offset) < total && total-int64(offset) > int64(limit),
		Total:    total,
	}
	if limit == 0 || int64(offset) >= total {
		return out, nil
	}

	rows, err := s.Repo.ListAvailablePage(ctx, s.DB, offset, limit)
	if err != nil {
		return nil, err
	}
	out.Listings = views(rows)
	return out, nil
}

// Overview returns the first page plus the header statistics.
func (s *ListingService) Overview(ctx context.Context) (*ListingOverview, error) {
	tr := otel.Tracer("services/ListingService")
	ctx, span := tr.Start(ctx, "Overview")
	defer span.End()

	count, rng, err := s.Repo.ListingStats(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	page, err := s.Page(ctx, 0, s.pageSize())
	if err != nil {
		return nil, err
	}

	ov := &ListingOverview{
		Listings:    page.Listings,
		DomainCount: count,
		HasMore:     page.HasMore,
		PageSize:    s.pageSize(),
	}
	if rng != nil {
		ov.PriceRange = FormatPriceRange(*rng)
	}
	return ov, nil
}

// Featured returns up to limit homepage listings as views.
func (s *ListingService) Featured(ctx context.Context, limit int) ([]domain.ListingView, error) {
	rows, err := s.Repo.ListHomepageFeatured(ctx, s.DB, limit)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []domain.ListingView{}, nil
		}
		return nil, err
	}
	return views(rows), nil
}

// FormatPriceRange renders "$min - $max" with grouping and no decimals. The
// range spans currencies, so the symbol is always "$".
func FormatPriceRange(r repo.PriceRange) string {
	return "$" + domain.GroupedAmount(r.Min) + " - $" + domain.GroupedAmount(r.Max)
}

func views(rows []domain.DomainListing) []domain.ListingView {
	out := make([]domain.ListingView, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].View())
	}
	return out
}
