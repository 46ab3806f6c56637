package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

func TestTierDiscountPercentage(t *testing.T) {
	cases := []struct {
		tier string
		want uint8
	}{
		{"Full Management", 100},
		{"full service", 100},
		{"Publisher", 50},
		{"Representation", 50},
		{"", 50},
	}
	for _, c := range cases {
		if got := TierDiscountPercentage(c.tier); got != c.want {
			t.Errorf("TierDiscountPercentage(%q) = %d, want %d", c.tier, got, c.want)
		}
	}
}

func userRow(id, roleID uint64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "role_id",
		"status", "is_demo", "created_at", "updated_at",
	}).AddRow(id, "u@example.com", "x", "U", roleID, "active", false, now, now)
}

func pctRow(v interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"pct"}).AddRow(v)
}

func TestResolveOverrideWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT MAX\\(override_percentage\\) FROM service_discount_overrides").
		WillReturnRows(pctRow(int64(30)))

	r := NewDiscountResolver(repository.NewUserRepo(db), repository.NewDiscountRepo(db), zerolog.Nop())
	got, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.MaxPercentage != 30 || got.Source != DiscountSourceOverride {
		t.Fatalf("got %+v, want 30%% from override", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResolvePermissionBeatsTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT MAX\\(override_percentage\\) FROM service_discount_overrides").
		WillReturnRows(pctRow(nil))
	mock.ExpectQuery("SELECT MAX\\(custom_max_percentage\\) FROM individual_discount_permissions").
		WillReturnRows(pctRow(int64(25)))

	r := NewDiscountResolver(repository.NewUserRepo(db), repository.NewDiscountRepo(db), zerolog.Nop())
	got, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.MaxPercentage != 25 || got.Source != DiscountSourcePermission {
		t.Fatalf("got %+v, want 25%% from individual_permission", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResolveUnmanagedGetsNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT MAX\\(override_percentage\\) FROM service_discount_overrides").
		WillReturnRows(pctRow(nil))
	mock.ExpectQuery("SELECT MAX\\(custom_max_percentage\\) FROM individual_discount_permissions").
		WillReturnRows(pctRow(nil))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(userRow(42, model.RoleArtist))

	r := NewDiscountResolver(repository.NewUserRepo(db), repository.NewDiscountRepo(db), zerolog.Nop())
	got, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.MaxPercentage != 0 || got.Source != DiscountSourceNone {
		t.Fatalf("got %+v, want none", got)
	}
}

func TestResolveFullManagementTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT MAX\\(override_percentage\\) FROM service_discount_overrides").
		WillReturnRows(pctRow(nil))
	mock.ExpectQuery("SELECT MAX\\(custom_max_percentage\\) FROM individual_discount_permissions").
		WillReturnRows(pctRow(nil))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(userRow(42, model.RoleManagedArtist))
	mock.ExpectQuery("SELECT mt.name FROM artists").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Full Management"))

	r := NewDiscountResolver(repository.NewUserRepo(db), repository.NewDiscountRepo(db), zerolog.Nop())
	got, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.MaxPercentage != 100 || got.Source != DiscountSourceTier {
		t.Fatalf("got %+v, want 100%% from management_tier", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
