package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

func TestCreateSubmission_AssignsIDAndTime(t *testing.T) {
	db := newTestDB(t, &domain.ContactSubmission{})
	ctx := context.Background()
	s := &domain.ContactSubmission{Name: "Alice", Email: "alice@example.com", Message: "I want example.com"}
	if err := CreateSubmission(ctx, db, s); err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if s.ID == "" || s.SubmittedAt.IsZero() {
		t.Fatalf("id/time not assigned: %+v", s)
	}
	got, err := GetSubmission(ctx, db, s.ID)
	if err != nil || got.Email != "alice@example.com" || got.IsResponded {
		t.Fatalf("GetSubmission: %v %+v", err, got)
	}
	if _, err := GetSubmission(ctx, db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestGetSubmission_MissingMapsToErrNotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &domain.ContactSubmission{})

	got, err := GetSubmission(ctx, db, "00000000-0000-0000-0000-000000000000")
	if err != ErrNotFound || got != nil {
		t.Fatalf("GetSubmission(missing) = %+v, %v; want nil, ErrNotFound", got, err)
	}

	// Other failures pass through unchanged.
	bare := newTestDB(t)
	if _, err := GetSubmission(ctx, bare, "x"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSubmission without table err = %v", err)
	}
}

func TestMarkResponded(t *testing.T) {
	db := newTestDB(t, &domain.ContactSubmission{})
	ctx := context.Background()
	s := &domain.ContactSubmission{Name: "Bob", Email: "bob@example.com", Message: "Hello hello"}
	if err := CreateSubmission(ctx, db, s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := MarkResponded(ctx, db, s.ID, true); err != nil {
		t.Fatalf("MarkResponded: %v", err)
	}
	got, _ := GetSubmission(ctx, db, s.ID)
	if !got.IsResponded {
		t.Fatalf("flag not set")
	}
	if err := MarkResponded(ctx, db, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestListSubmissionsPage_NewestFirst(t *testing.T) {
	db := newTestDB(t, &domain.ContactSubmission{})
	ctx := context.Background()
	base := time.Now().UTC()
	for i, name := range []string{"first", "second", "third"} {
		s := &domain.ContactSubmission{Name: name, Email: "x@example.com", Message: "0123456789", SubmittedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := CreateSubmission(ctx, db, s); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	out, err := ListSubmissionsPage(ctx, db, 0, 2)
	if err != nil || len(out) != 2 || out[0].Name != "third" || out[1].Name != "second" {
		t.Fatalf("page: %v %+v", err, out)
	}
	n, err := CountSubmissions(ctx, db)
	if err != nil || n != 3 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestActiveContactInfo_NoneAndSaveKeepsOneActive(t *testing.T) {
	db := newTestDB(t, &domain.ContactInfo{}, &domain.ContactService{})
	ctx := context.Background()

	got, err := ActiveContactInfo(ctx, db)
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}

	a := &domain.ContactInfo{EmailValue: "a@example.com", IsActive: true}
	b := &domain.ContactInfo{EmailValue: "b@example.com", IsActive: true}
	c := &domain.ContactInfo{EmailValue: "c@example.com"}
	for _, ci := range []*domain.ContactInfo{a, b, c} {
		if err := SaveContactInfo(ctx, db, ci); err != nil {
			t.Fatalf("SaveContactInfo: %v", err)
		}
	}
	assertActiveCount[domain.ContactInfo](t, db, 1)

	got, err = ActiveContactInfo(ctx, db)
	if err != nil || got == nil || got.ID != b.ID {
		t.Fatalf("active = %+v, %v; want b", got, err)
	}
	if got.PhoneValue != "+1 (555) 123-4567" {
		t.Fatalf("column default not applied: %q", got.PhoneValue)
	}
}

func TestListActiveServicesAndExpectations(t *testing.T) {
	db := newTestDB(t, &domain.ContactInfo{}, &domain.ContactService{}, &domain.ExpectationItem{})
	ctx := context.Background()
	ci := &domain.ContactInfo{IsActive: true}
	if err := SaveContactInfo(ctx, db, ci); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, s := range []domain.ContactService{
		{ContactInfoID: ci.ID, Name: "Valuation", IsActive: true, SortOrder: 2},
		{ContactInfoID: ci.ID, Name: "Research", IsActive: true, SortOrder: 1},
		{ContactInfoID: ci.ID, Name: "Hidden", SortOrder: 0},
	} {
		s := s
		if err := CreateService(ctx, db, &s); err != nil {
			t.Fatalf("service: %v", err)
		}
	}
	svcs, err := ListActiveServices(ctx, db, ci.ID)
	if err != nil || len(svcs) != 2 || svcs[0].Name != "Research" {
		t.Fatalf("services: %v %+v", err, svcs)
	}

	for _, e := range []domain.ExpectationItem{
		{Title: "Reply", Description: "d", Order: 1, IsActive: true},
		{Title: "Call", Description: "d", Order: 0, IsActive: true},
		{Title: "Off", Description: "d"},
	} {
		e := e
		if err := CreateExpectation(ctx, db, &e); err != nil {
			t.Fatalf("expectation: %v", err)
		}
	}
	items, err := ListActiveExpectations(ctx, db)
	if err != nil || len(items) != 2 || items[0].Title != "Call" {
		t.Fatalf("expectations: %v %+v", err, items)
	}
}
