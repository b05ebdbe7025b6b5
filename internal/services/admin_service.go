// Package services – AdminService
//
// AdminService backs the small authenticated admin surface: reviewing
// contact submissions, switching the active homepage and contact
// configuration, adding listings and removing unused lookup rows.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/repo"
)

// defaultWebsiteName labels listings created without a marketplace.
const defaultWebsiteName = "GoDaddy"

// maxPrice is the first value that no longer fits decimal(10,2).
var maxPrice = decimal.New(1, 8)

// NewListing is the input for AdminService.CreateListing. Price is a decimal
// string with at most two fractional digits.
type NewListing struct {
	Name                 string
	Description          string
	Price                string
	CurrencyID           *uint
	StatusID             uint
	Features             string
	ListingURL           string
	WebsiteName          string
	IsAvailable          *bool
	IsFeaturedOnHomepage bool
	DirectToContact      bool
}

// AdminService provides back-office operations.
type AdminService struct {
	DB *gorm.DB
}

// ListSubmissions returns a page of submissions, newest first, and the total.
func (s *AdminService) ListSubmissions(ctx context.Context, page, pageSize int) ([]domain.ContactSubmission, int64, error) {
	tr := otel.Tracer("services/AdminService")
	ctx, span := tr.Start(ctx, "ListSubmissions",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountSubmissions(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ContactSubmission{}, 0, nil
	}
	items, err := repo.ListSubmissionsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// MarkResponded flags a submission as answered (or not).
func (s *AdminService) MarkResponded(ctx context.Context, id string, responded bool) error {
	if err := repo.MarkResponded(ctx, s.DB, id, responded); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	return nil
}

// ActivateContactInfo makes one contact configuration the active one.
func (s *AdminService) ActivateContactInfo(ctx context.Context, id uint) error {
	return mapNotFound(repo.Activate[domain.ContactInfo](ctx, s.DB, id))
}

// ActivateHomePage makes one homepage row the active one.
func (s *AdminService) ActivateHomePage(ctx context.Context, id uint) error {
	return mapNotFound(repo.Activate[domain.HomePage](ctx, s.DB, id))
}

// CreateListing validates and stores a new listing. Rule violations wrap
// ErrInvalidListing; a taken name is ErrConflict.
func (s *AdminService) CreateListing(ctx context.Context, in NewListing) (*domain.DomainListing, error) {
	tr := otel.Tracer("services/AdminService")
	ctx, span := tr.Start(ctx, "CreateListing",
		trace.WithAttributes(attribute.String("domain.name", in.Name)),
	)
	defer span.End()

	name := strings.ToLower(strings.TrimSpace(in.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidListing)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return nil, fmt.Errorf("%w: price is not a number", ErrInvalidListing)
	}
	if !price.Equal(price.Round(2)) {
		return nil, fmt.Errorf("%w: price has more than two decimal places", ErrInvalidListing)
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return nil, fmt.Errorf("%w: price is too large", ErrInvalidListing)
	}

	l := &domain.DomainListing{
		Name:                 name,
		Description:          strings.TrimSpace(in.Description),
		Price:                price.Round(2),
		CurrencyID:           in.CurrencyID,
		StatusID:             in.StatusID,
		Features:             in.Features,
		ListingURL:           strings.TrimSpace(in.ListingURL),
		WebsiteName:          strings.TrimSpace(in.WebsiteName),
		IsAvailable:          in.IsAvailable == nil || *in.IsAvailable,
		IsFeaturedOnHomepage: in.IsFeaturedOnHomepage,
		DirectToContact:      in.DirectToContact,
	}
	if l.WebsiteName == "" {
		l.WebsiteName = defaultWebsiteName
	}

	switch err := repo.CreateListing(ctx, s.DB, l); {
	case err == nil:
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrConflict
	case errors.Is(err, repo.ErrNegativePrice),
		errors.Is(err, repo.ErrInactiveStatus),
		errors.Is(err, repo.ErrInactiveCurrency):
		return nil, fmt.Errorf("%w: %v", ErrInvalidListing, err)
	default:
		return nil, err
	}
	return repo.GetListing(ctx, s.DB, l.ID)
}

// DeleteCurrency removes a currency no listing uses.
func (s *AdminService) DeleteCurrency(ctx context.Context, id uint) error {
	return mapDeleteErr(repo.DeleteCurrency(ctx, s.DB, id))
}

// DeleteStatus removes a status no listing uses.
func (s *AdminService) DeleteStatus(ctx context.Context, id uint) error {
	return mapDeleteErr(repo.DeleteStatus(ctx, s.DB, id))
}

// PurgeExpiredKeys drops idempotency records past their TTL.
func (s *AdminService) PurgeExpiredKeys(ctx context.Context) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, time.Now().UTC())
}

func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func mapDeleteErr(err error) error {
	if errors.Is(err, repo.ErrProtected) {
		return ErrProtected
	}
	return mapNotFound(err)
}
