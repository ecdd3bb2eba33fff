package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/internal/domain/repository"
)

// ProfileRepository keeps one row per user. Social links and the experience
// and education lists live in jsonb columns so every write is a single
// UPDATE against the owner's row.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, user_id, company, website, location, bio, status, githubusername,
	skills, social, experience, education, created_at, updated_at`

func scanProfile(row scanner) (*entity.Profile, error) {
	p := &entity.Profile{}
	var social, exp, edu []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Bio, &p.Status,
		&p.GithubUsername, &p.Skills, &social, &exp, &edu, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, errors.Wrap(err, "decode social")
	}
	if err := json.Unmarshal(exp, &p.Experience); err != nil {
		return nil, errors.Wrap(err, "decode experience")
	}
	if err := json.Unmarshal(edu, &p.Education); err != nil {
		return nil, errors.Wrap(err, "decode education")
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
	return p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	defer rows.Close()
	out := []*entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "list profiles")
}

// Upsert inserts the row or sets only the supplied columns. Social links are
// merged key by key.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, f entity.ProfileFields) (*entity.Profile, error) {
	social, err := json.Marshal(f.SocialSet())
	if err != nil {
		return nil, err
	}
	var skills any
	if f.Skills != nil {
		skills = f.Skills
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, company, website, location, bio, status, githubusername, skills, social)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, ''),
			COALESCE($7, ''), COALESCE($8::text[], '{}'), $9::jsonb)
		ON CONFLICT (user_id) DO UPDATE SET
			company        = COALESCE($2, profiles.company),
			website        = COALESCE($3, profiles.website),
			location       = COALESCE($4, profiles.location),
			bio            = COALESCE($5, profiles.bio),
			status         = COALESCE($6, profiles.status),
			githubusername = COALESCE($7, profiles.githubusername),
			skills         = COALESCE($8::text[], profiles.skills),
			social         = profiles.social || $9::jsonb,
			updated_at     = now()
		RETURNING `+profileColumns,
		userID, f.Company, f.Website, f.Location, f.Bio, f.Status, f.GithubUsername, skills, social)
	return scanProfile(row)
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) push(ctx context.Context, column, userID string, entry any) (*entity.Profile, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE profiles SET `+column+` = jsonb_build_array($2::jsonb) || `+column+`, updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns, userID, b))
}

// pull rebuilds the array without the matching element, keeping order. An
// unknown id rewrites the same array.
func (r *ProfileRepository) pull(ctx context.Context, column, userID, entryID string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE profiles SET `+column+` = COALESCE((
			SELECT jsonb_agg(t.e ORDER BY t.ord)
			FROM jsonb_array_elements(profiles.`+column+`) WITH ORDINALITY AS t(e, ord)
			WHERE t.e->>'_id' <> $2
		), '[]'::jsonb), updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns, userID, entryID))
}

func (r *ProfileRepository) PushExperience(ctx context.Context, userID string, e entity.Experience) (*entity.Profile, error) {
	return r.push(ctx, "experience", userID, e)
}

func (r *ProfileRepository) PullExperience(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	return r.pull(ctx, "experience", userID, entryID)
}

func (r *ProfileRepository) PushEducation(ctx context.Context, userID string, e entity.Education) (*entity.Profile, error) {
	return r.push(ctx, "education", userID, e)
}

func (r *ProfileRepository) PullEducation(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	return r.pull(ctx, "education", userID, entryID)
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
