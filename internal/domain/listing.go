package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ContactPath is where contact call-to-action buttons point.
const ContactPath = "/contact"

const (
	defaultCurrencySymbol = "$"
	defaultBadgeClass     = "bg-gray-100 text-gray-800"
	defaultStatusName     = "Regular"
)

// DomainStatus is a lookup row describing how a listing is badged
// (Premium, Featured, New, ...). Only active statuses may be attached to new
// listings.
type DomainStatus struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	Name       string    `json:"name"        gorm:"type:varchar(20);not null;uniqueIndex"`
	Slug       string    `json:"slug"        gorm:"type:varchar(20);not null;uniqueIndex"`
	BadgeClass string    `json:"badge_class" gorm:"type:varchar(100);not null;default:'bg-gray-100 text-gray-800'"`
	IsActive   bool      `json:"is_active"   gorm:"not null"`
	SortOrder  int       `json:"sort_order"  gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for DomainStatus.
func (DomainStatus) TableName() string { return "domain_statuses" }

// Currency is a lookup row for listing prices.
type Currency struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(30);not null;uniqueIndex"`
	Code      string    `json:"code"       gorm:"type:varchar(3);not null;uniqueIndex"`
	Symbol    string    `json:"symbol"     gorm:"type:varchar(5);not null"`
	IsActive  bool      `json:"is_active"  gorm:"not null"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Currency.
func (Currency) TableName() string { return "currencies" }

// DomainListing is a domain name offered for sale.
//
// Currency is optional and displays as "$" when unset. Status is required.
// Both references are RESTRICT on delete so lookup rows in use cannot be
// removed from under a listing.
type DomainListing struct {
	ID                   uint            `json:"id"                      gorm:"primaryKey"`
	Name                 string          `json:"name"                    gorm:"type:varchar(100);not null;uniqueIndex"`
	Price                decimal.Decimal `json:"price"                   gorm:"type:decimal(10,2);not null;check:chk_domains_price,price >= 0"`
	CurrencyID           *uint           `json:"currency_id,omitempty"   gorm:"index"`
	StatusID             uint            `json:"status_id"               gorm:"not null;index"`
	Description          string          `json:"description"             gorm:"type:text;not null"`
	Features             string          `json:"features"                gorm:"type:text;not null;default:''"`
	ListingURL           string          `json:"listing_url"             gorm:"type:varchar(500);not null;default:''"`
	WebsiteName          string          `json:"website_name"            gorm:"type:varchar(50);not null"`
	IsAvailable          bool            `json:"is_available"            gorm:"not null;index:idx_domains_feed,priority:1"`
	IsFeaturedOnHomepage bool            `json:"is_featured_on_homepage" gorm:"not null;index:idx_domains_feed,priority:2"`
	DirectToContact      bool            `json:"direct_to_contact"       gorm:"not null"`
	CreatedAt            time.Time       `json:"created_at"              gorm:"index:idx_domains_feed,priority:3"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Currency *Currency    `json:"currency,omitempty" gorm:"foreignKey:CurrencyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Status   DomainStatus `json:"status"             gorm:"foreignKey:StatusID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for DomainListing.
func (DomainListing) TableName() string { return "domains" }

// CurrencySymbol returns the currency symbol or "$" when no currency is set.
func (d DomainListing) CurrencySymbol() string {
	if d.Currency != nil && d.Currency.Symbol != "" {
		return d.Currency.Symbol
	}
	return defaultCurrencySymbol
}

// FormattedPrice renders the price with its symbol, grouping separators and
// no decimal places, e.g. "$12,500".
func (d DomainListing) FormattedPrice() string {
	return d.CurrencySymbol() + GroupedAmount(d.Price)
}

// GroupedAmount rounds half-to-even to a whole number and groups thousands
// with commas.
func GroupedAmount(v decimal.Decimal) string {
	return groupPrinter.Sprintf("%d", v.RoundBank(0).IntPart())
}

var groupPrinter = message.NewPrinter(language.English)

// FeaturesList splits Features on newlines and drops blank lines.
func (d DomainListing) FeaturesList() []string {
	out := []string{}
	for _, line := range strings.Split(d.Features, "\n") {
		if f := strings.TrimSpace(line); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// DisplayStatus is the status name, or "Regular" when the status is not loaded.
func (d DomainListing) DisplayStatus() string {
	if d.Status.Name != "" {
		return d.Status.Name
	}
	return defaultStatusName
}

// StatusBadgeClass is the CSS class list for the status badge.
func (d DomainListing) StatusBadgeClass() string {
	if d.Status.BadgeClass != "" {
		return d.Status.BadgeClass
	}
	return defaultBadgeClass
}

// HasExternalListing reports whether the call-to-action leaves the site.
func (d DomainListing) HasExternalListing() bool {
	return d.ListingURL != "" && !d.DirectToContact
}

// ShouldShowContactButton is the complement of HasExternalListing.
func (d DomainListing) ShouldShowContactButton() bool {
	return d.DirectToContact || d.ListingURL == ""
}

// ViewButtonText labels the listing's call-to-action.
func (d DomainListing) ViewButtonText() string {
	switch {
	case d.DirectToContact:
		return "Contact for Details"
	case d.ListingURL != "" && d.WebsiteName != "":
		return "View on " + d.WebsiteName
	case d.ListingURL != "":
		return "View Listing"
	default:
		return "Contact for Details"
	}
}

// ButtonURL is the call-to-action target.
func (d DomainListing) ButtonURL() string {
	if d.ShouldShowContactButton() {
		return ContactPath
	}
	return d.ListingURL
}

// ListingView is the display-ready projection served by the load-more feed.
type ListingView struct {
	Name                    string   `json:"name"`
	Description             string   `json:"description"`
	Price                   string   `json:"price"`
	FormattedPrice          string   `json:"formatted_price"`
	CurrencySymbol          string   `json:"currency_symbol"`
	DisplayStatus           string   `json:"display_status"`
	StatusBadgeClass        string   `json:"status_badge_class"`
	FeaturesList            []string `json:"features_list"`
	ListingURL              string   `json:"listing_url"`
	ViewButtonText          string   `json:"view_button_text"`
	ButtonURL               string   `json:"button_url"`
	HasExternalListing      bool     `json:"has_external_listing"`
	ShouldShowContactButton bool     `json:"should_show_contact_button"`
	DirectToContact         bool     `json:"direct_to_contact"`
}

// View projects the listing into its display form. It needs Currency and
// Status preloaded to resolve symbols and badges.
func (d DomainListing) View() ListingView {
	return ListingView{
		Name:                    d.Name,
		Description:             d.Description,
		Price:                   d.Price.StringFixed(2),
		FormattedPrice:          d.FormattedPrice(),
		CurrencySymbol:          d.CurrencySymbol(),
		DisplayStatus:           d.DisplayStatus(),
		StatusBadgeClass:        d.StatusBadgeClass(),
		FeaturesList:            d.FeaturesList(),
		ListingURL:              d.ListingURL,
		ViewButtonText:          d.ViewButtonText(),
		ButtonURL:               d.ButtonURL(),
		HasExternalListing:      d.HasExternalListing(),
		ShouldShowContactButton: d.ShouldShowContactButton(),
		DirectToContact:         d.DirectToContact,
	}
}
