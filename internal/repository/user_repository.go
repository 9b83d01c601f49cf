package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool        *pgxpool.Pool
	ownerOpenID string
	logger      zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
// ownerOpenID is the external identity that is auto-promoted to admin.
func NewUserRepository(pool *pgxpool.Pool, ownerOpenID string, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:        pool,
		ownerOpenID: ownerOpenID,
		logger:      logger.With().Str("repository", "user").Logger(),
	}
}

// Upsert inserts a new user row or updates the existing one matched by open id.
func (r *userRepository) Upsert(ctx context.Context, user model.UserUpsert) error {
	if user.OpenID == "" {
		// Caller contract violation, not a storage failure: fail loud.
		return fmt.Errorf("open id is required for upsert")
	}

	columns := []string{"open_id"}
	values := []any{user.OpenID}
	updates := []string{}

	assign := func(column string, value any) {
		columns = append(columns, column)
		values = append(values, value)
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	if user.Name != nil {
		assign("name", *user.Name)
	}
	if user.Email != nil {
		assign("email", *user.Email)
	}
	if user.LoginMethod != nil {
		assign("login_method", *user.LoginMethod)
	}

	if user.Role != nil {
		assign("role", *user.Role)
	} else if r.ownerOpenID != "" && user.OpenID == r.ownerOpenID {
		// Owner identity is force-promoted on both insert and update paths.
		assign("role", model.RoleAdmin)
	}

	lastSignedIn := time.Now()
	if user.LastSignedIn != nil {
		lastSignedIn = *user.LastSignedIn
	}
	assign("last_signed_in", lastSignedIn)

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES (%s)
		ON CONFLICT (open_id) DO UPDATE SET %s, updated_at = NOW()
	`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	if _, err := r.pool.Exec(ctx, query, values...); err != nil {
		r.logger.Error().Err(err).Str("open_id", user.OpenID).Msg("failed to upsert user")
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	r.logger.Debug().Str("open_id", user.OpenID).Msg("user upserted")

	return nil
}

// GetByOpenID retrieves a user by external identity.
func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	query := `
		SELECT id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in
		FROM users
		WHERE open_id = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, openID).Scan(
		&u.ID,
		&u.OpenID,
		&u.Name,
		&u.Email,
		&u.LoginMethod,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastSignedIn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("open_id", openID).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("open_id", openID).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}
