// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package auth (Postgres) implements the persistence layer for user identity.

# Schema Table Mapping
  - users.account: Master identity and profile data.

Soft-deleted rows (deletedat set) are invisible to every query here, so a
deleted account can neither log in nor be resolved from a still-valid token.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/platform/database/schema"
	"github.com/studymate/api/internal/platform/dberr"
	"github.com/studymate/api/pkg/pagination"
)

// # Repository Implementation

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new Postgres implementation for identity storage.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// accountColumns is the SELECT list shared by every lookup.
func accountColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Username, schema.UserAccount.PasswordHash, schema.UserAccount.AvatarID,
		schema.UserAccount.Domains, schema.UserAccount.LearningStyle, schema.UserAccount.StudyTime,
		schema.UserAccount.TeamPref, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)
}

// scanAccount hydrates a [User] from a single-row result.
func scanAccount(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.AvatarID,
		&user.Domains,
		&user.LearningStyle,
		&user.StudyTime,
		&user.TeamPref,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// findByColumn runs a single-row lookup against one identity column.
func (repository *PostgresUserRepository) findByColumn(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		accountColumns(),
		schema.UserAccount.Table,
		column, schema.UserAccount.DeletedAt,
	)

	user, err := scanAccount(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_%s_failed: %w", column, err)
	}

	return user, nil
}

/*
FindByID retrieves a live user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findByColumn(context, schema.UserAccount.ID, id)
}

/*
FindByEmail retrieves a live user by exact email match.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findByColumn(context, schema.UserAccount.Email, email)
}

/*
FindByUsername retrieves a live user by exact username match.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findByColumn(context, schema.UserAccount.Username, username)
}

/*
Create inserts a new user row.

Description: Unique violations on the email or username indexes are mapped
to the same conflict errors the service's pre-insert checks produce, so the
check-then-insert race collapses into one failure mode.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict or insert failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Username, schema.UserAccount.PasswordHash, schema.UserAccount.AvatarID,
		schema.UserAccount.Domains, schema.UserAccount.LearningStyle, schema.UserAccount.StudyTime,
		schema.UserAccount.TeamPref, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AvatarID,
		user.Domains,
		user.LearningStyle,
		user.StudyTime,
		user.TeamPref,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		switch dberr.UniqueViolation(err) {
		case schema.UserAccount.EmailUnique:
			return apperr.Conflict(MsgEmailExists)
		case schema.UserAccount.UsernameUnique:
			return apperr.Conflict(MsgUsernameTaken)
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update modifies the mutable profile fields of a user.

Description: This method syncs the Name, AvatarID, Domains, LearningStyle,
StudyTime, and TeamPref fields, while refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.AvatarID, schema.UserAccount.Domains,
		schema.UserAccount.LearningStyle, schema.UserAccount.StudyTime, schema.UserAccount.TeamPref,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.AvatarID,
		user.Domains,
		user.LearningStyle,
		user.StudyTime,
		user.TeamPref,
		time.Now(),
	)

	// If the update fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	return nil
}

/*
Search retrieves live users whose name or username matches a folded term.

Description: The term is expected to be pre-folded by the caller (lowercase,
accents stripped). Matching is case-insensitive substring search over both
the display name and the username, newest accounts first. An empty domains
filter matches everyone; a non-empty one keeps users whose domains overlap
it.

Parameters:
  - context: context.Context
  - term: string (pre-folded query)
  - domains: []string (study domain filter, may be empty)
  - params: pagination.Params

Returns:
  - []User: Matching page of users
  - int: Total match count across all pages
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) Search(context context.Context, term string, domains []string, params pagination.Params) ([]User, int, error) {
	pattern := "%" + term + "%"
	if domains == nil {
		domains = []string{}
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE (%s ILIKE $1 OR %s ILIKE $1)
		  AND (cardinality($2::text[]) = 0 OR %s && $2)
		  AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Username,
		schema.UserAccount.Domains, schema.UserAccount.DeletedAt,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, pattern, domains).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_search_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE (%s ILIKE $1 OR %s ILIKE $1)
		  AND (cardinality($2::text[]) = 0 OR %s && $2)
		  AND %s IS NULL
		ORDER BY %s DESC
		LIMIT $3 OFFSET $4`,
		accountColumns(),
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Username,
		schema.UserAccount.Domains, schema.UserAccount.DeletedAt,
		schema.UserAccount.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, pattern, domains, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_search_failed: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}

	return users, total, nil
}

/*
SoftDelete flags a user account as logically destroyed.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.DeletedAt, schema.UserAccount.ID)
	_, err := repository.pool.Exec(context, query, id)
	return err
}
