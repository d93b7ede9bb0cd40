package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kitswap/kitswap-backend/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id,email,password_hash,first_name,last_name,phone,user_type,school_name,
	suburb,town,province,street_address,id_number,status,seller_verified,verification_status,
	id_document_url,proof_of_address_url,bank_name,bank_account_number,bank_account_type,
	bank_branch_code,created_at,updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.Role, &u.SchoolName, &u.Suburb, &u.Town, &u.Province, &u.StreetAddress,
		&u.IDNumber, &u.Status, &u.SellerVerified, &u.VerificationStatus,
		&u.IDDocumentURL, &u.ProofOfAddressURL, &u.BankName, &u.BankAccountNumber,
		&u.BankAccountType, &u.BankBranchCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user and returns its ID. The caller supplies an already
// hashed credential. Duplicate emails map to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (uint64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone, user_type,
			school_name, suburb, town, province, status, seller_verified, verification_status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role.String(),
		u.SchoolName, u.Suburb, u.Town, u.Province, u.Status, u.SellerVerified, u.VerificationStatus)
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

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// SetDocument stores an uploaded verification document path and drops the
// account back to pending review. A fresh document always re-triggers
// review, even for a previously verified seller.
func (r *UserRepo) SetDocument(ctx context.Context, id uint64, kind DocumentKind, path string) error {
	var column string
	switch kind {
	case DocumentID:
		column = "id_document_url"
	case DocumentProofOfAddress:
		column = "proof_of_address_url"
	default:
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+column+"=?, verification_status=?, seller_verified=0 WHERE id=?",
		path, model.VerificationPending, id)
	if err != nil {
		return err
	}
	return r.requireUser(ctx, res, id)
}

// DocumentKind selects which verification document column an upload targets.
type DocumentKind int

const (
	DocumentID DocumentKind = iota
	DocumentProofOfAddress
)

// Count returns the total number of accounts.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// CountByStatus returns the number of accounts in the given lifecycle state.
func (r *UserRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE status=?", status).Scan(&n)
	return n, err
}

// CountByVerificationStatus returns the number of accounts in the given
// review state.
func (r *UserRepo) CountByVerificationStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE verification_status=?", status).Scan(&n)
	return n, err
}

// List returns accounts, optionally filtered by role and/or a
// case-insensitive substring match over first name, last name and email.
// A nil role means no role filter.
func (r *UserRepo) List(ctx context.Context, role *model.Role, search string) ([]model.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	var (
		where []string
		args  []any
	)
	if role != nil {
		where = append(where, "user_type=?")
		args = append(args, role.String())
	}
	if s := strings.TrimSpace(search); s != "" {
		where = append(where, "(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)")
		needle := "%" + strings.ToLower(s) + "%"
		args = append(args, needle, needle, needle)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// PendingSellers returns accounts with a selling role whose verification is
// still pending.
func (r *UserRepo) PendingSellers(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE user_type IN (?,?) AND verification_status=? ORDER BY created_at DESC",
		model.RoleSeller.String(), model.RoleBoth.String(), model.VerificationPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// SetVerification records an admin verify/reject decision.
func (r *UserRepo) SetVerification(ctx context.Context, id uint64, verified bool, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET seller_verified=?, verification_status=? WHERE id=?",
		verified, status, id)
	if err != nil {
		return err
	}
	return r.requireUser(ctx, res, id)
}

// SetRole changes an account's role.
func (r *UserRepo) SetRole(ctx context.Context, id uint64, role model.Role) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET user_type=? WHERE id=?", role.String(), id)
	if err != nil {
		return err
	}
	return r.requireUser(ctx, res, id)
}

// SetPasswordHash replaces an account's stored credential.
func (r *UserRepo) SetPasswordHash(ctx context.Context, id uint64, hash string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	if err != nil {
		return err
	}
	return r.requireUser(ctx, res, id)
}

// SetStatus toggles an account between active and suspended.
func (r *UserRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	return r.requireUser(ctx, res, id)
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// requireUser maps "zero rows affected" onto ErrNotFound, with an existence
// probe first: MySQL also reports zero affected rows for updates that match
// a row but change nothing, and those must not look like a missing account.
func (r *UserRepo) requireUser(ctx context.Context, res sql.Result, id uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var one int
	err = r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
