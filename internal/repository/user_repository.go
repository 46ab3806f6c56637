package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/utils"
)

// UserRepo provides access to the users, roles and
// user_secondary_roles tables.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName string, roleID uint64, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, role_id) VALUES (?,?,?,?)",
		email, hash, strings.TrimSpace(fullName), roleID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = "id,email,password_hash,full_name,role_id,status,is_demo,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.RoleID,
		&u.Status, &u.IsDemo, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetWithRoles resolves the enriched identity view: the user joined
// with the primary role name, the derived category/managed flag, the
// profile-level primary talent for talent categories, and the full
// set of secondary roles.
func (r *UserRepo) GetWithRoles(ctx context.Context, id uint64) (*model.UserWithRoles, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &model.UserWithRoles{
		User:           u,
		RoleName:       model.RoleName(u.RoleID),
		Category:       model.CategoryForRole(u.RoleID),
		IsManaged:      model.IsManagedRole(u.RoleID),
		SecondaryRoles: []model.Role{},
	}

	// Prefer the stored role name when the roles table carries a
	// custom label for this ID.
	var roleName string
	err = r.DB.QueryRowContext(ctx, "SELECT name FROM roles WHERE id=? LIMIT 1", u.RoleID).Scan(&roleName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if roleName != "" {
		out.RoleName = roleName
	}

	talent, err := r.primaryTalentName(ctx, id, out.Category)
	if err != nil {
		return nil, err
	}
	out.PrimaryTalent = talent

	rows, err := r.DB.QueryContext(ctx,
		`SELECT ro.id, ro.name
		 FROM user_secondary_roles sr
		 JOIN roles ro ON ro.id = sr.role_id
		 WHERE sr.user_id = ?
		 ORDER BY ro.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ro model.Role
		if err := rows.Scan(&ro.ID, &ro.Name); err != nil {
			return nil, err
		}
		out.SecondaryRoles = append(out.SecondaryRoles, ro)
	}
	return out, rows.Err()
}

// primaryTalentName looks up the profile-level primary talent for
// talent categories.  Artists and musicians reference all_instruments;
// professionals reference the professional talent catalog.  Admins and
// fans have no profile talent, so nil is returned without querying.
func (r *UserRepo) primaryTalentName(ctx context.Context, userID uint64, cat model.RoleCategory) (*string, error) {
	var q string
	switch cat {
	case model.CategoryArtist:
		q = `SELECT i.name FROM artists a JOIN all_instruments i ON i.id = a.primary_talent_id WHERE a.user_id = ?`
	case model.CategoryMusician:
		q = `SELECT i.name FROM musicians m JOIN all_instruments i ON i.id = m.primary_talent_id WHERE m.user_id = ?`
	case model.CategoryProfessional:
		q = `SELECT t.name FROM professionals p JOIN professional_primary_talents t ON t.id = p.primary_talent_id WHERE p.user_id = ?`
	default:
		return nil, nil
	}
	var name string
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &name, nil
}

// FirstSuperadmin returns the lowest-ID active superadmin.  The
// contract orchestrator uses it to provision the platform-side signer;
// a missing superadmin is a deployment misconfiguration.
func (r *UserRepo) FirstSuperadmin(ctx context.Context) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role_id=? AND status='active' ORDER BY id LIMIT 1",
		model.RoleSuperadmin))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrSuperadminNotFound
	}
	return u, err
}

// SetPrimaryRole moves a user onto a different primary role, used by
// admins to promote users into the managed tiers.
func (r *UserRepo) SetPrimaryRole(ctx context.Context, userID, roleID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role_id=?, updated_at=UTC_TIMESTAMP() WHERE id=?", roleID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the user is missing or the role is unchanged; confirm
		// existence so callers get a real not-found.
		var one int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", userID).Scan(&one); errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}
