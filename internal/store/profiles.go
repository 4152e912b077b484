package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/models"
)

type ProfileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, full_name, avatar_url, bio, created_at, updated_at
		FROM profiles
		WHERE id = $1`,
		pgUUID(id))

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("profile not found", "PROFILE_NOT_FOUND", "")
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// Upsert creates the profile row on first write. Profiles mirror auth users
// that are created outside this service, so an update has to tolerate the
// row not existing yet.
func (s *ProfileStore) Upsert(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO profiles (id, username, full_name, avatar_url, bio)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			bio = EXCLUDED.bio,
			updated_at = now()
		RETURNING id, username, full_name, avatar_url, bio, created_at, updated_at`,
		pgUUID(profile.ID), profile.Username, pgText(profile.FullName),
		pgText(profile.AvatarURL), pgText(profile.Bio))

	updated, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return updated, nil
}

// FindRecipient resolves a share recipient by username or email. Email
// lookup goes through the auth schema since profiles do not carry emails.
func (s *ProfileStore) FindRecipient(ctx context.Context, identifier string) (uuid.UUID, error) {
	var id pgtype.UUID
	err := s.db.QueryRow(ctx, `
		SELECT p.id
		FROM profiles p
		LEFT JOIN auth.users u ON u.id = p.id
		WHERE p.username = $1 OR u.email = $1
		LIMIT 1`,
		identifier).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.NewNotFoundError("recipient not found", "RECIPIENT_NOT_FOUND", "")
		}
		return uuid.Nil, fmt.Errorf("find recipient: %w", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var (
		profile   models.Profile
		id        pgtype.UUID
		fullName  pgtype.Text
		avatarURL pgtype.Text
		bio       pgtype.Text
	)
	err := row.Scan(&id, &profile.Username, &fullName, &avatarURL, &bio,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	profile.ID = uuid.UUID(id.Bytes)
	profile.FullName = fullName.String
	profile.AvatarURL = avatarURL.String
	profile.Bio = bio.String
	return &profile, nil
}
