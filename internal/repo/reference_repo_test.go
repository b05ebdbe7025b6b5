package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

func TestDeleteCurrencyAndStatus_Protected(t *testing.T) {
	db := newListingDB(t)
	ctx := context.Background()
	st, cur := seedLookups(t, db)
	l := seedListing(t, db, "x.com", "10", st.ID, time.Now().UTC(), true, false)
	db.Model(&l).Update("currency_id", cur.ID)

	if err := DeleteCurrency(ctx, db, cur.ID); !errors.Is(err, ErrProtected) {
		t.Fatalf("DeleteCurrency err = %v; want ErrProtected", err)
	}
	if err := DeleteStatus(ctx, db, st.ID); !errors.Is(err, ErrProtected) {
		t.Fatalf("DeleteStatus err = %v; want ErrProtected", err)
	}

	spare := domain.Currency{Name: "Euro", Code: "EUR", Symbol: "€", IsActive: true}
	if err := CreateCurrency(ctx, db, &spare); err != nil {
		t.Fatalf("CreateCurrency: %v", err)
	}
	if err := DeleteCurrency(ctx, db, spare.ID); err != nil {
		t.Fatalf("unreferenced currency should delete: %v", err)
	}
	if err := DeleteCurrency(ctx, db, spare.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v; want ErrNotFound", err)
	}
}

func TestCreateReference_Duplicate(t *testing.T) {
	db := newListingDB(t)
	ctx := context.Background()
	seedLookups(t, db)
	if err := CreateStatus(ctx, db, &domain.DomainStatus{Name: "Premium", Slug: "premium-2"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("CreateStatus err = %v; want ErrDuplicate", err)
	}
	if err := CreateCurrency(ctx, db, &domain.Currency{Name: "Other", Code: "GBP", Symbol: "x"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("CreateCurrency err = %v; want ErrDuplicate", err)
	}
}

func TestListActiveLookups_Ordered(t *testing.T) {
	db := newListingDB(t)
	ctx := context.Background()
	db.Create(&domain.DomainStatus{Name: "B", Slug: "b", IsActive: true, SortOrder: 1})
	db.Create(&domain.DomainStatus{Name: "A", Slug: "a", IsActive: true, SortOrder: 1})
	db.Create(&domain.DomainStatus{Name: "Z", Slug: "z", IsActive: true, SortOrder: 0})
	db.Create(&domain.DomainStatus{Name: "Off", Slug: "off"})
	db.Create(&domain.Currency{Name: "US Dollar", Code: "USD", Symbol: "$", IsActive: true})
	db.Create(&domain.Currency{Name: "Old", Code: "OLD", Symbol: "o"})

	sts, err := ListActiveStatuses(ctx, db)
	if err != nil || len(sts) != 3 || sts[0].Name != "Z" || sts[1].Name != "A" || sts[2].Name != "B" {
		t.Fatalf("statuses: %v %+v", err, sts)
	}
	curs, err := ListActiveCurrencies(ctx, db)
	if err != nil || len(curs) != 1 || curs[0].Code != "USD" {
		t.Fatalf("currencies: %v %+v", err, curs)
	}
}
