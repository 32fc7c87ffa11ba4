package postgres

import (
	"context"
	"errors"
	"fmt"
	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `
		SELECT id, username, full_name, avatar_url, updated_at
		FROM profiles
		WHERE id = $1
	`

	profile := &entity.Profile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	query := `
		INSERT INTO profiles (id, username, full_name, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = EXCLUDED.updated_at
		RETURNING id, username, full_name, avatar_url, updated_at
	`

	stored := &entity.Profile{}
	err := r.pool.QueryRow(ctx, query,
		profile.ID, profile.Username, profile.FullName, profile.AvatarURL, profile.UpdatedAt,
	).Scan(
		&stored.ID, &stored.Username, &stored.FullName, &stored.AvatarURL, &stored.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return stored, nil
}
