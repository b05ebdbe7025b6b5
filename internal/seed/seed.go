// Package seed loads sample site content from a YAML fixture and inserts it
// idempotently. Rows are matched on their natural keys (slugs, names), so a
// fixture may be applied any number of times.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/repo"
	"github.com/tbourn/go-domain-finder/internal/services"
)

// Sample is the fixture shipped with the binary.
//
//go:embed sample.yaml
var Sample []byte

// Fixture is the document root.
type Fixture struct {
	HomePage   *HomePage  `yaml:"homepage"`
	Contact    *Contact   `yaml:"contact"`
	Categories []Category `yaml:"categories"`
	Authors    []Author   `yaml:"authors"`
	Posts      []Post     `yaml:"posts"`
	Listings   []Listing  `yaml:"listings"`
}

// HomePage overrides the hero of the default homepage.
type HomePage struct {
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Analytics bool   `yaml:"analytics"`
}

type Contact struct {
	Email        string        `yaml:"email"`
	Phone        string        `yaml:"phone"`
	AddressLine1 string        `yaml:"address_line1"`
	AddressLine2 string        `yaml:"address_line2"`
	Services     []string      `yaml:"services"`
	Expectations []Expectation `yaml:"expectations"`
}

type Expectation struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type Category struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type Author struct {
	Name    string `yaml:"name"`
	Bio     string `yaml:"bio"`
	Avatar  string `yaml:"avatar"`
	Email   string `yaml:"email"`
	Website string `yaml:"website"`
}

// Post references its author by name and its category by slug.
type Post struct {
	Title     string `yaml:"title"`
	Slug      string `yaml:"slug"`
	Author    string `yaml:"author"`
	Category  string `yaml:"category"`
	Excerpt   string `yaml:"excerpt"`
	Content   string `yaml:"content"`
	ImageURL  string `yaml:"image_url"`
	ReadTime  string `yaml:"read_time"`
	Featured  bool   `yaml:"featured"`
	Published *bool  `yaml:"published"` // default true
}

// Listing references its status by slug and its currency by ISO code.
type Listing struct {
	Name            string   `yaml:"name"`
	Price           string   `yaml:"price"`
	Currency        string   `yaml:"currency"`
	Status          string   `yaml:"status"`
	Description     string   `yaml:"description"`
	Features        []string `yaml:"features"`
	ListingURL      string   `yaml:"listing_url"`
	WebsiteName     string   `yaml:"website_name"`
	Available       *bool    `yaml:"available"` // default true
	Featured        bool     `yaml:"featured"`
	DirectToContact bool     `yaml:"direct_to_contact"`
}

// Report counts the rows inserted by Apply.
type Report struct {
	Categories, Authors, Posts, Listings int
	HomePage, Contact                    bool
}

// Parse decodes a fixture. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("seed: fixture is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes a fixture from disk.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Apply inserts everything in f that is not present yet, in one
// transaction. Reference data (currencies, statuses) must already exist.
func Apply(ctx context.Context, db *gorm.DB, f *Fixture) (Report, error) {
	var rep Report
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []func(context.Context, *gorm.DB, *Fixture, *Report) error{
			applyHomePage, applyContact, applyCategories, applyAuthors, applyPosts, applyListings,
		}
		for _, step := range steps {
			if err := step(ctx, tx, f, &rep); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	return rep, nil
}

func applyHomePage(ctx context.Context, db *gorm.DB, f *Fixture, rep *Report) error {
	if f.HomePage == nil {
		return nil
	}
	if existing, err := repo.ActiveHomePage(ctx, db); err != nil || existing != nil {
		return err
	}
	h := domain.DefaultHomePage()
	if f.HomePage.Title != "" {
		h.Title = f.HomePage.Title
	}
	if f.HomePage.Subtitle != "" {
		h.Subtitle = f.HomePage.Subtitle
	}
	h.ShowAdvancedAnalytics = f.HomePage.Analytics
	h.IsActive = true
	if err := repo.SaveHomePage(ctx, db, &h); err != nil {
		return fmt.Errorf("seed: homepage: %w", err)
	}
	rep.HomePage = true
	return nil
}

func applyContact(ctx context.Context, db *gorm.DB, f *Fixture, rep *Report) error {
	c := f.Contact
	if c == nil {
		return nil
	}
	if existing, err := repo.ActiveContactInfo(ctx, db); err != nil || existing != nil {
		return err
	}
	ci := domain.ContactInfo{
		EmailValue:       c.Email,
		PhoneValue:       c.Phone,
		AddressLine1:     c.AddressLine1,
		AddressLine2:     c.AddressLine2,
		ShowServices:     len(c.Services) > 0,
		ShowWhatToExpect: len(c.Expectations) > 0,
		IsActive:         true,
	}
	if err := repo.SaveContactInfo(ctx, db, &ci); err != nil {
		return fmt.Errorf("seed: contact info: %w", err)
	}
	for i, name := range c.Services {
		s := domain.ContactService{ContactInfoID: ci.ID, Name: name, IsActive: true, SortOrder: i}
		if err := repo.CreateService(ctx, db, &s); err != nil {
			return fmt.Errorf("seed: contact service %q: %w", name, err)
		}
	}
	for i, e := range c.Expectations {
		item := domain.ExpectationItem{Title: e.Title, Description: e.Description, Icon: e.Icon, Order: i, IsActive: true}
		if _, err := ensure(ctx, db, &item, "title = ?", e.Title); err != nil {
			return fmt.Errorf("seed: expectation %q: %w", e.Title, err)
		}
	}
	rep.Contact = true
	return nil
}

func applyCategories(ctx context.Context, db *gorm.DB, f *Fixture, rep *Report) error {
	for _, c := range f.Categories {
		row := domain.BlogCategory{Name: c.Name, Slug: c.Slug}
		created, err := ensure(ctx, db, &row, "slug = ?", c.Slug)
		if err != nil {
			return fmt.Errorf("seed: category %q: %w", c.Slug, err)
		}
		rep.Categories += count(created)
	}
	return nil
}

func applyAuthors(ctx context.Context, db *gorm.DB, f *Fixture, rep *Report) error {
	for _, a := range f.Authors {
		row := domain.Author{Name: a.Name, Bio: a.Bio, Avatar: a.Avatar, Email: a.Email, Website: a.Website, IsActive: true}
		created, err := ensure(ctx, db, &row, "name = ?", a.Name)
		if err != nil {
			return fmt.Errorf("seed: author %q: %w", a.Name, err)
		}
		rep.Authors += count(created)
	}
	return nil
}

func applyPosts(ctx context.Context, db *gorm.DB, f *Fixture, rep *Report) error {
	for _, p := range f.Posts {
		var au domain.Author
		if err := db.WithContext(ctx).Where("name = ?", p.Author).First(&au).Error; err != nil {
			return fmt.Errorf("seed: post %q: author %q: %w", p.Slug, p.Author, err)
		}
		var cat domain.BlogCategory
		if err := db.WithContext(ctx).Where("slug = ?", p.Category).First(&cat).Error; err != nil {
			return fmt.Errorf("seed: post %q: category %q: %w", p.Slug, p.Category, err)
		}
		row := domain.BlogPost{
			Title:       p.Title,
			Slug:        p.Slug,
			AuthorID:    au.ID,
			CategoryID:  cat.ID,
			Excerpt:     p.Excerpt,
			Content:     p.Content,
			ImageURL:    p.ImageURL,
			ReadTime:    p.ReadTime,
			IsFeatured:  p.Featured,
			IsPublished: p.Published == nil || *p.Published,
		}
		created, err := ensure(ctx, db, &row, "slug = ?", p.Slug)
		if err != nil {
			return fmt.Errorf("seed: post %q: %w", p.Slug, err)
		}
		rep.Posts += count(created)
	}
	return nil
}

func applyListings(ctx context.Context, db *gorm.DB, f *Fixture, rep *Report) error {
	admin := &services.AdminService{DB: db}
	for _, l := range f.Listings {
		name := strings.ToLower(strings.TrimSpace(l.Name))
		var n int64
		if err := db.WithContext(ctx).Model(&domain.DomainListing{}).Where("name = ?", name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}

		var st domain.DomainStatus
		if err := db.WithContext(ctx).Where("slug = ?", l.Status).First(&st).Error; err != nil {
			return fmt.Errorf("seed: listing %q: status %q: %w", name, l.Status, err)
		}
		in := services.NewListing{
			Name:                 name,
			Price:                l.Price,
			StatusID:             st.ID,
			Description:          l.Description,
			Features:             strings.Join(l.Features, "\n"),
			ListingURL:           l.ListingURL,
			WebsiteName:          l.WebsiteName,
			IsAvailable:          l.Available,
			IsFeaturedOnHomepage: l.Featured,
			DirectToContact:      l.DirectToContact,
		}
		if l.Currency != "" {
			var cur domain.Currency
			if err := db.WithContext(ctx).Where("code = ?", strings.ToUpper(l.Currency)).First(&cur).Error; err != nil {
				return fmt.Errorf("seed: listing %q: currency %q: %w", name, l.Currency, err)
			}
			in.CurrencyID = &cur.ID
		}
		if _, err := admin.CreateListing(ctx, in); err != nil {
			return fmt.Errorf("seed: listing %q: %w", name, err)
		}
		rep.Listings++
	}
	return nil
}

// ensure inserts row unless a row matching the condition exists, and
// reports whether it inserted.
func ensure[T any](ctx context.Context, db *gorm.DB, row *T, cond string, args ...any) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(new(T)).Where(cond, args...).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	return true, db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
}

func count(created bool) int {
	if created {
		return 1
	}
	return 0
}
