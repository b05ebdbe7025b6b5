// Package services – ContentService
//
// ContentService assembles the data behind the public HTML pages: the
// homepage, the blog list and detail pages, and the contact page. Pages read
// the active singleton rows (HomePage, ContactInfo) at request time and fall
// back to built-in content when none is active.
package services

import (
	"bytes"
	"context"
	"errors"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/repo"
)

const (
	// homepageListings caps the listings strip on the homepage.
	homepageListings = 3
	// relatedPosts caps the "related articles" section of a post.
	relatedPosts = 2
	// blogLoadMoreThreshold is the post count above which the blog list
	// shows its load-more control.
	blogLoadMoreThreshold = 7
)

// HomeView is the homepage model.
type HomeView struct {
	Home                  domain.HomePage
	FeaturedPost          *domain.BlogPost
	FeaturedListings      []domain.ListingView
	ShowAdvancedAnalytics bool
}

// BlogListView is the blog index model. FeaturedPost is excluded from Posts.
type BlogListView struct {
	FeaturedPost    *domain.BlogPost
	Posts           []domain.BlogPost
	Categories      []domain.BlogCategory
	CurrentCategory string
	Total           int64
	ShowLoadMore    bool
}

// BlogDetailView is a single post with its rendered body.
type BlogDetailView struct {
	Post        domain.BlogPost
	ContentHTML string
	Related     []domain.BlogPost
}

// ContactPageView is the contact page model. Info may be nil.
type ContactPageView struct {
	Info         *domain.ContactInfo
	Services     []domain.ContactService
	Expectations []domain.ExpectationItem
	SiteKey      string
}

// ContentService provides page models.
type ContentService struct {
	DB       *gorm.DB
	Markdown goldmark.Markdown

	// RecaptchaSiteKey is exposed to the contact page script.
	RecaptchaSiteKey string
}

// NewContentService constructs a ContentService with a GitHub-flavoured
// Markdown renderer. Raw HTML in posts is not passed through.
func NewContentService(db *gorm.DB, siteKey string) *ContentService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &ContentService{DB: db, Markdown: md, RecaptchaSiteKey: siteKey}
}

// ContactInfo returns the active contact configuration, or nil.
func (s *ContentService) ContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return repo.ActiveContactInfo(ctx, s.DB)
}

// Home returns the homepage model.
func (s *ContentService) Home(ctx context.Context) (*HomeView, error) {
	tr := otel.Tracer("services/ContentService")
	ctx, span := tr.Start(ctx, "Home")
	defer span.End()

	home := domain.DefaultHomePage()
	active, err := repo.ActiveHomePage(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if active != nil {
		home = *active
	}

	post, err := repo.FirstFeaturedPost(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	rows, err := repo.ListHomepageFeatured(ctx, s.DB, homepageListings)
	if err != nil {
		return nil, err
	}

	return &HomeView{
		Home:                  home,
		FeaturedPost:          post,
		FeaturedListings:      views(rows),
		ShowAdvancedAnalytics: active != nil && active.ShowAdvancedAnalytics,
	}, nil
}

// BlogList returns the published posts, optionally for one category slug.
// An unknown slug yields an empty list.
func (s *ContentService) BlogList(ctx context.Context, categorySlug string) (*BlogListView, error) {
	tr := otel.Tracer("services/ContentService")
	ctx, span := tr.Start(ctx, "BlogList",
		trace.WithAttributes(attribute.String("category", categorySlug)),
	)
	defer span.End()

	total, err := repo.CountPublishedPosts(ctx, s.DB, categorySlug)
	if err != nil {
		return nil, err
	}
	posts, err := repo.ListPublishedPosts(ctx, s.DB, categorySlug)
	if err != nil {
		return nil, err
	}
	cats, err := repo.ListCategories(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	out := &BlogListView{
		Posts:           make([]domain.BlogPost, 0, len(posts)),
		Categories:      cats,
		CurrentCategory: categorySlug,
		Total:           total,
		ShowLoadMore:    total > blogLoadMoreThreshold,
	}
	for i := range posts {
		if out.FeaturedPost == nil && posts[i].IsFeatured {
			out.FeaturedPost = &posts[i]
			continue
		}
		out.Posts = append(out.Posts, posts[i])
	}
	return out, nil
}

// BlogDetail returns a published post with its Markdown rendered to HTML,
// or ErrPostNotFound.
func (s *ContentService) BlogDetail(ctx context.Context, id uint) (*BlogDetailView, error) {
	tr := otel.Tracer("services/ContentService")
	ctx, span := tr.Start(ctx, "BlogDetail",
		trace.WithAttributes(attribute.Int64("post.id", int64(id))),
	)
	defer span.End()

	post, err := repo.GetPublishedPost(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.Markdown.Convert([]byte(post.Content), &buf); err != nil {
		return nil, err
	}

	related, err := repo.ListRelatedPosts(ctx, s.DB, post, relatedPosts)
	if err != nil {
		return nil, err
	}
	return &BlogDetailView{Post: *post, ContentHTML: buf.String(), Related: related}, nil
}

// ContactPage returns the contact page model.
func (s *ContentService) ContactPage(ctx context.Context) (*ContactPageView, error) {
	info, err := repo.ActiveContactInfo(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	out := &ContactPageView{Info: info, SiteKey: s.RecaptchaSiteKey}
	if info != nil {
		if out.Services, err = repo.ListActiveServices(ctx, s.DB, info.ID); err != nil {
			return nil, err
		}
	}
	if out.Expectations, err = repo.ListActiveExpectations(ctx, s.DB); err != nil {
		return nil, err
	}
	return out, nil
}
