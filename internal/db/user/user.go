package user

import (
	"context"
	"database/sql"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "account_email_idx"

const userColumns = "id, name, email, password_hash, created_at, reset_token, reset_token_expires_at"

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) *PgxUserRepository {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxUserRepository{pool: pool}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO account (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		if pgerr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgerr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM account WHERE id = $1`,
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM account WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE account SET password_hash = $1 WHERE id = $2`,
		string(password),
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input user.SetPasswordResetTokenInput,
) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE account SET reset_token = $1, reset_token_expires_at = $2 WHERE id = $3`,
		string(input.Token),
		input.ExpiresAt,
		int64(input.UserID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// RedeemPasswordResetToken is a single conditional UPDATE, so concurrent
// redemption attempts with the same token cannot both succeed.
func (r *PgxUserRepository) RedeemPasswordResetToken(
	ctx context.Context,
	input user.RedeemPasswordResetTokenInput,
) (u user.User, err error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE account
		 SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL
		 WHERE id = $2 AND reset_token = $3 AND reset_token_expires_at > $4
		 RETURNING `+userColumns,
		string(input.NewPasswordHash),
		int64(input.UserID),
		string(input.Token),
		input.Now,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var resetToken sql.NullString
	var resetTokenExpiresAt sql.NullTime
	var email string
	var createdAt time.Time

	err = row.Scan(
		&u.ID,
		&u.Name,
		&email,
		&u.PasswordHash,
		&createdAt,
		&resetToken,
		&resetTokenExpiresAt,
	)
	if err != nil {
		return u, err
	}
	u.Email = c.Email(email)
	u.CreatedAt = createdAt
	u.ResetToken = c.NewOptional(user.PasswordResetToken(resetToken.String), resetToken.Valid)
	u.ResetTokenExpiresAt = c.NewOptional(resetTokenExpiresAt.Time, resetTokenExpiresAt.Valid)
	return u, nil
}
