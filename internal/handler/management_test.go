package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/repository"
)

func setRoleContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/users/42/role", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("42")
	return c, rec
}

func TestSetRolePromotesAndGrantsTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "full_name", "role_id",
			"status", "is_demo", "created_at", "updated_at",
		}).AddRow(42, "a@example.com", "x", "A", 4, "active", false, now, now))
	mock.ExpectExec("UPDATE users SET role_id").
		WithArgs(uint64(3), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO artists").
		WithArgs(uint64(42), true, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := NewManagementHandler(repository.NewUserRepo(db), repository.NewProfileRepo(db), zerolog.Nop())
	c, rec := setRoleContext(`{"role":"managed_artist","management_tier_id":3}`)
	if err := h.SetRole(c); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSetRoleDemotionClearsTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "full_name", "role_id",
			"status", "is_demo", "created_at", "updated_at",
		}).AddRow(42, "a@example.com", "x", "A", 3, "active", false, now, now))
	mock.ExpectExec("UPDATE users SET role_id").
		WithArgs(uint64(4), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO artists").
		WithArgs(uint64(42), false, nil).
		WillReturnResult(sqlmock.NewResult(0, 2))

	h := NewManagementHandler(repository.NewUserRepo(db), repository.NewProfileRepo(db), zerolog.Nop())
	c, rec := setRoleContext(`{"role":"artist"}`)
	if err := h.SetRole(c); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSetRoleValidation(t *testing.T) {
	h := NewManagementHandler(nil, nil, zerolog.Nop())

	cases := []struct {
		name string
		body string
	}{
		{"unknown role", `{"role":"impresario"}`},
		{"superadmin not grantable", `{"role":"superadmin"}`},
		{"managed role without tier", `{"role":"managed_musician"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := setRoleContext(tc.body)
			if err := h.SetRole(c); err != nil {
				t.Fatalf("SetRole: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}
