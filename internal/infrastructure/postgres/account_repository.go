package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, name, email, password_hash, role, approved_at, approved_by_id,
		feature_flags, company_name, phone_number, address, website, tax_id, designation,
		last_login_at, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
// feature_flags se guarda como JSONB nullable; NULL significa "nunca
// asignados" y la capa de política lo resuelve con los defaults.
type AccountRepo struct {
	pool *pgxpool.Pool
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	flags, err := flagsToJSON(a.FeatureFlags)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.ApprovedAt, a.ApprovedByID,
		flags, nullIfEmpty(a.CompanyName), nullIfEmpty(a.PhoneNumber), nullIfEmpty(a.Address),
		nullIfEmpty(a.Website), nullIfEmpty(a.TaxID), nullIfEmpty(a.Designation),
		a.LastLoginAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID; nil sin error si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByEmail obtiene una cuenta por email; nil sin error si no existe.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1`
	return r.queryOne(ctx, query, email)
}

func (r *AccountRepo) queryOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// Update escribe la fila completa (un solo UPDATE).
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET name = $2, email = $3, password_hash = $4, role = $5,
			approved_at = $6, approved_by_id = $7, feature_flags = $8,
			company_name = $9, phone_number = $10, address = $11, website = $12,
			tax_id = $13, designation = $14, updated_at = $15
		WHERE id = $1`
	flags, err := flagsToJSON(a.FeatureFlags)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.ApprovedAt, a.ApprovedByID,
		flags, nullIfEmpty(a.CompanyName), nullIfEmpty(a.PhoneNumber), nullIfEmpty(a.Address),
		nullIfEmpty(a.Website), nullIfEmpty(a.TaxID), nullIfEmpty(a.Designation), a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// UpdateApproval escribe approved_at y approved_by_id juntos: un solo UPDATE,
// nunca se observa un estado a medio aprobar.
func (r *AccountRepo) UpdateApproval(ctx context.Context, id string, approvedAt *time.Time, approvedByID *string) error {
	query := `UPDATE accounts SET approved_at = $2, approved_by_id = $3, updated_at = now() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, approvedAt, approvedByID)
	if err != nil {
		return fmt.Errorf("update approval: %w", err)
	}
	return nil
}

// UpdateFeatureFlags escribe el mapa de flags completo en una sola escritura.
func (r *AccountRepo) UpdateFeatureFlags(ctx context.Context, id string, flags entity.FeatureFlags) error {
	raw, err := flagsToJSON(&flags)
	if err != nil {
		return err
	}
	query := `UPDATE accounts SET feature_flags = $2, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, raw); err != nil {
		return fmt.Errorf("update feature flags: %w", err)
	}
	return nil
}

// UpdateLastLogin marca el último login.
func (r *AccountRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE accounts SET last_login_at = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// UpdatePasswordHash reemplaza el hash de password.
func (r *AccountRepo) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	query := `UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, hash); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

// List lista cuentas con filtros de rol y aprobación, más recientes primero.
func (r *AccountRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []any{}
	n := 0
	if f.Role != "" {
		n++
		query += fmt.Sprintf(" AND role = $%d", n)
		args = append(args, f.Role)
	}
	switch f.Approval {
	case repository.ApprovalPending:
		query += " AND approved_at IS NULL"
	case repository.ApprovalApproved:
		query += " AND approved_at IS NOT NULL"
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina una cuenta por ID.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*entity.Account, error) {
	var (
		a           entity.Account
		rawFlags    []byte
		companyName *string
		phoneNumber *string
		address     *string
		website     *string
		taxID       *string
		designation *string
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.ApprovedAt, &a.ApprovedByID,
		&rawFlags, &companyName, &phoneNumber, &address, &website, &taxID, &designation,
		&a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rawFlags != nil {
		var flags entity.FeatureFlags
		if err := json.Unmarshal(rawFlags, &flags); err != nil {
			return nil, fmt.Errorf("decode feature flags: %w", err)
		}
		a.FeatureFlags = &flags
	}
	a.CompanyName = deref(companyName)
	a.PhoneNumber = deref(phoneNumber)
	a.Address = deref(address)
	a.Website = deref(website)
	a.TaxID = deref(taxID)
	a.Designation = deref(designation)
	return &a, nil
}

func flagsToJSON(flags *entity.FeatureFlags) ([]byte, error) {
	if flags == nil {
		return nil, nil
	}
	raw, err := json.Marshal(flags)
	if err != nil {
		return nil, fmt.Errorf("encode feature flags: %w", err)
	}
	return raw, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUniqueViolation verifica si un error es una violación de constraint único
// (23505); para accounts el único constraint único es el email.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
