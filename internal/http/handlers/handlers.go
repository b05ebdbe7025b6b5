// Package handlers contains the transport-thin Gin handlers of the site:
// HTML pages, the listing feed, the contact form endpoint and the admin API.
// Handlers validate input, call application services, and translate results
// into HTTP responses.
package handlers

import (
	"context"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/services"
)

//
// Service contracts (context-aware)
//

// ListingService serves the public listing feed.
type ListingService interface {
	// ParsePageParams validates raw offset/limit query values.
	ParsePageParams(offsetRaw, limitRaw string) (offset, limit int, err error)
	// Page returns one window of available listings.
	Page(ctx context.Context, offset, limit int) (*services.ListingPage, error)
	// Overview returns the first page plus header statistics.
	Overview(ctx context.Context) (*services.ListingOverview, error)
}

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, in services.ContactInput) (*services.ContactResult, error)
}

// ContentService assembles the page models.
type ContentService interface {
	ContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	Home(ctx context.Context) (*services.HomeView, error)
	BlogList(ctx context.Context, categorySlug string) (*services.BlogListView, error)
	BlogDetail(ctx context.Context, id uint) (*services.BlogDetailView, error)
	ContactPage(ctx context.Context) (*services.ContactPageView, error)
}

//
// Handler wiring
//

// Handlers groups the public endpoints.
type Handlers struct {
	listings ListingService
	contact  ContactService
	content  ContentService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(listings ListingService, contact ContactService, content ContentService) *Handlers {
	return &Handlers{listings: listings, contact: contact, content: content}
}
