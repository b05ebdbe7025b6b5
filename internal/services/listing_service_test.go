package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// ----- Fake repo -----

type fakeListingRepo struct {
	rows []domain.DomainListing

	countCalls int
	countErr   error

	pageCalls  int
	pageOffset int
	pageLimit  int
	pageErr    error

	statsRange *repo.PriceRange
	statsErr   error
}

func (r *fakeListingRepo) CountAvailable(ctx context.Context, db *gorm.DB) (int64, error) {
	r.countCalls++
	return int64(len(r.rows)), r.countErr
}

func (r *fakeListingRepo) ListAvailablePage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.DomainListing, error) {
	r.pageCalls++
	r.pageOffset, r.pageLimit = offset, limit
	if r.pageErr != nil {
		return nil, r.pageErr
	}
	end := len(r.rows)
	if limit < end-offset {
		end = offset + limit
	}
	return r.rows[offset:end], nil
}

func (r *fakeListingRepo) ListingStats(ctx context.Context, db *gorm.DB) (int64, *repo.PriceRange, error) {
	return int64(len(r.rows)), r.statsRange, r.statsErr
}

func (r *fakeListingRepo) ListHomepageFeatured(ctx context.Context, db *gorm.DB, limit int) ([]domain.DomainListing, error) {
	var out []domain.DomainListing
	for _, l := range r.rows {
		if l.IsFeaturedOnHomepage && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func listings(n int) []domain.DomainListing {
	out := make([]domain.DomainListing, n)
	for i := range out {
		out[i] = domain.DomainListing{
			Name:        fmt.Sprintf("d%d.com", i),
			Price:       decimal.NewFromInt(int64(1000 * (i + 1))),
			IsAvailable: true,
		}
	}
	return out
}

// dbListingRepo adapts the repo package to ListingRepo.
type dbListingRepo struct{}

func (dbListingRepo) CountAvailable(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountAvailable(ctx, db)
}
func (dbListingRepo) ListAvailablePage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.DomainListing, error) {
	return repo.ListAvailablePage(ctx, db, offset, limit)
}
func (dbListingRepo) ListingStats(ctx context.Context, db *gorm.DB) (int64, *repo.PriceRange, error) {
	return repo.ListingStats(ctx, db)
}
func (dbListingRepo) ListHomepageFeatured(ctx context.Context, db *gorm.DB, limit int) ([]domain.DomainListing, error) {
	return repo.ListHomepageFeatured(ctx, db, limit)
}

// ----- Tests -----

func TestParsePageParams(t *testing.T) {
	svc := NewListingService(nil, &fakeListingRepo{}, 0)

	off, lim, err := svc.ParsePageParams("", "")
	if err != nil || off != 0 || lim != DefaultPageSize {
		t.Fatalf("defaults = %d,%d,%v", off, lim, err)
	}
	off, lim, err = svc.ParsePageParams("12", "3")
	if err != nil || off != 12 || lim != 3 {
		t.Fatalf("explicit = %d,%d,%v", off, lim, err)
	}
	for _, pair := range [][2]string{{"abc", "6"}, {"0", "x"}, {"-1", "6"}, {"0", "-6"}, {"1.5", "6"}} {
		if _, _, err := svc.ParsePageParams(pair[0], pair[1]); !errors.Is(err, ErrInvalidParameters) {
			t.Fatalf("ParsePageParams(%q,%q) err = %v; want ErrInvalidParameters", pair[0], pair[1], err)
		}
	}
}

func TestPage_FirstAndSecondWindow(t *testing.T) {
	fr := &fakeListingRepo{rows: listings(8)}
	svc := NewListingService(nil, fr, 6)

	p, err := svc.Page(context.Background(), 0, 6)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(p.Listings) != 6 || !p.HasMore || p.Total != 8 {
		t.Fatalf("first window: len=%d has_more=%v total=%d", len(p.Listings), p.HasMore, p.Total)
	}

	p, err = svc.Page(context.Background(), 6, 6)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(p.Listings) != 2 || p.HasMore {
		t.Fatalf("second window: len=%d has_more=%v", len(p.Listings), p.HasMore)
	}
	if p.Listings[0].Name != "d6.com" {
		t.Fatalf("window started at %q", p.Listings[0].Name)
	}
}

func TestPage_WindowProperty(t *testing.T) {
	const total = 7
	fr := &fakeListingRepo{rows: listings(total)}
	svc := NewListingService(nil, fr, 6)

	for offset := 0; offset <= total+2; offset++ {
		for limit := 0; limit <= total+2; limit++ {
			p, err := svc.Page(context.Background(), offset, limit)
			if err != nil {
				t.Fatalf("Page(%d,%d): %v", offset, limit, err)
			}
			if len(p.Listings) > limit {
				t.Fatalf("Page(%d,%d) returned %d rows", offset, limit, len(p.Listings))
			}
			if want := offset+limit < total; p.HasMore != want {
				t.Fatalf("Page(%d,%d).HasMore = %v; want %v", offset, limit, p.HasMore, want)
			}
			if p.Listings == nil {
				t.Fatalf("Page(%d,%d) returned nil listings", offset, limit)
			}
		}
	}
}

func TestPage_HugeWindowDoesNotWrap(t *testing.T) {
	fr := &fakeListingRepo{rows: listings(8)}
	svc := NewListingService(nil, fr, 6)

	off, lim, err := svc.ParsePageParams(strconv.Itoa(math.MaxInt), "1")
	if err != nil {
		t.Fatalf("ParsePageParams: %v", err)
	}

	cases := []struct {
		offset, limit int
		wantRows      int
	}{
		{off, lim, 0},
		{math.MaxInt, math.MaxInt, 0},
		{0, math.MaxInt, 8},
		{7, math.MaxInt, 1},
	}
	for _, tc := range cases {
		p, err := svc.Page(context.Background(), tc.offset, tc.limit)
		if err != nil {
			t.Fatalf("Page(%d,%d): %v", tc.offset, tc.limit, err)
		}
		if p.HasMore {
			t.Fatalf("Page(%d,%d).HasMore = true; want false", tc.offset, tc.limit)
		}
		if len(p.Listings) != tc.wantRows {
			t.Fatalf("Page(%d,%d) returned %d rows; want %d", tc.offset, tc.limit, len(p.Listings), tc.wantRows)
		}
	}
}

func TestPage_SkipsFetchWhenWindowEmpty(t *testing.T) {
	fr := &fakeListingRepo{rows: listings(3)}
	svc := NewListingService(nil, fr, 6)

	if _, err := svc.Page(context.Background(), 3, 6); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if _, err := svc.Page(context.Background(), 0, 0); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if fr.pageCalls != 0 {
		t.Fatalf("expected no page query, got %d", fr.pageCalls)
	}
}

func TestPage_NegativeRejectedWithoutQuery(t *testing.T) {
	fr := &fakeListingRepo{rows: listings(3)}
	svc := NewListingService(nil, fr, 6)

	if _, err := svc.Page(context.Background(), -1, 6); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("err = %v; want ErrInvalidParameters", err)
	}
	if _, err := svc.Page(context.Background(), 0, -1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("err = %v; want ErrInvalidParameters", err)
	}
	if fr.countCalls != 0 || fr.pageCalls != 0 {
		t.Fatalf("repo touched: count=%d page=%d", fr.countCalls, fr.pageCalls)
	}
}

func TestPage_RepoErrors(t *testing.T) {
	boom := errors.New("boom")

	svc := NewListingService(nil, &fakeListingRepo{rows: listings(2), countErr: boom}, 6)
	if _, err := svc.Page(context.Background(), 0, 6); !errors.Is(err, boom) {
		t.Fatalf("count err = %v", err)
	}

	svc = NewListingService(nil, &fakeListingRepo{rows: listings(2), pageErr: boom}, 6)
	if _, err := svc.Page(context.Background(), 0, 6); !errors.Is(err, boom) {
		t.Fatalf("page err = %v", err)
	}
}

func TestOverview(t *testing.T) {
	fr := &fakeListingRepo{
		rows: listings(7),
		statsRange: &repo.PriceRange{
			Min: decimal.RequireFromString("999.50"),
			Max: decimal.RequireFromString("250000"),
		},
	}
	ov, err := NewListingService(nil, fr, 6).Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.DomainCount != 7 || len(ov.Listings) != 6 || !ov.HasMore || ov.PageSize != 6 {
		t.Fatalf("overview = %+v", ov)
	}
	if ov.PriceRange != "$1,000 - $250,000" {
		t.Fatalf("PriceRange = %q", ov.PriceRange)
	}

	empty, err := NewListingService(nil, &fakeListingRepo{}, 6).Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if empty.PriceRange != "" || empty.DomainCount != 0 || empty.HasMore || len(empty.Listings) != 0 {
		t.Fatalf("empty overview = %+v", empty)
	}
}

func TestListingService_AgainstDatabase(t *testing.T) {
	db := newTestDB(t)
	st := domain.DomainStatus{Name: "New", Slug: "new", IsActive: true}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed status: %v", err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	add := func(name, price string, ageDays int, available, featured bool) {
		l := domain.DomainListing{
			Name: name, Price: decimal.RequireFromString(price), StatusID: st.ID,
			Description: "x", WebsiteName: "GoDaddy",
			IsAvailable: available, IsFeaturedOnHomepage: featured,
			CreatedAt: base.AddDate(0, 0, -ageDays),
		}
		if err := db.Create(&l).Error; err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	add("old-featured.com", "500", 30, true, true)
	add("newest.com", "1500", 0, true, false)
	add("middle.com", "2500", 10, true, false)
	add("sold.com", "90000", 1, false, true)

	svc := NewListingService(db, dbListingRepo{}, 2)
	p, err := svc.Page(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if p.Total != 3 || !p.HasMore || len(p.Listings) != 2 {
		t.Fatalf("page = %+v", p)
	}
	if p.Listings[0].Name != "old-featured.com" || p.Listings[1].Name != "newest.com" {
		t.Fatalf("order = %s, %s", p.Listings[0].Name, p.Listings[1].Name)
	}
	if p.Listings[0].DisplayStatus != "New" {
		t.Fatalf("status not preloaded: %+v", p.Listings[0])
	}

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.PriceRange != "$500 - $2,500" || ov.DomainCount != 3 {
		t.Fatalf("overview = %+v", ov)
	}

	feat, err := svc.Featured(context.Background(), 3)
	if err != nil || len(feat) != 1 || feat[0].Name != "old-featured.com" {
		t.Fatalf("Featured = %+v, %v", feat, err)
	}
}
