package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/encorehq/booking-platform/internal/model"
)

func TestProfileUpsertLeavesManagementColumnsAlone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The statement carries only the eight user-editable columns; a
	// save must not reach is_managed or management_tier_id even when
	// the caller's struct has them set.
	stage := "The Night Owls"
	price := int64(500000)
	mock.ExpectExec(`INSERT INTO artists\s*\(user_id, stage_name, primary_genre, base_price_cents, ideal_rate_cents,\s*minimum_rate_cents, primary_talent_id, is_complete\)`).
		WithArgs(uint64(42), stage, nil, price, nil, nil, nil, true).
		WillReturnResult(sqlmock.NewResult(0, 2))

	tier := uint64(3)
	repo := NewProfileRepo(db)
	err = repo.Upsert(context.Background(), model.CategoryArtist, &model.TalentProfile{
		UserID:           42,
		StageName:        &stage,
		BasePriceCents:   &price,
		IsComplete:       true,
		IsManaged:        true,
		ManagementTierID: &tier,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSetManagementGrantsTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	tier := uint64(3)
	mock.ExpectExec(`INSERT INTO musicians \(user_id, is_managed, management_tier_id\)`).
		WithArgs(uint64(42), true, tier).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewProfileRepo(db)
	if err := repo.SetManagement(context.Background(), model.CategoryMusician, 42, true, &tier); err != nil {
		t.Fatalf("SetManagement: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
