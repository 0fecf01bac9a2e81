package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	worker "worker-profile-service/internal/domains/worker"
	"worker-profile-service/internal/domains/worker/model"
	"worker-profile-service/pkg/database"
)

// postgresRepository is the concrete Repository on pgx. It is private;
// callers depend on the interface only.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// CREATE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, profile *model.WorkerProfile) (*model.WorkerProfile, error) {
	now := time.Now().UTC()
	profile.ID = uuid.New()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	metadata, err := marshalMetadata(profile.Metadata)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO worker_profiles (
				id, user_id, name, bio, experience_years, active,
				travel_radius_km, metadata, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		if _, err := tx.Exec(ctx, query,
			profile.ID,
			profile.UserID,
			profile.Name,
			profile.Bio,
			profile.ExperienceYears,
			profile.Active,
			profile.TravelRadiusKm,
			metadata,
			profile.CreatedAt,
			profile.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}

		if err := r.linkNamedEntities(ctx, tx, profile.ID, "categories", "worker_categories", "category_id", names(profile.Categories)); err != nil {
			return err
		}
		if err := r.linkNamedEntities(ctx, tx, profile.ID, "skills", "worker_skills", "skill_id", names(profile.Skills)); err != nil {
			return err
		}
		if err := r.linkNamedEntities(ctx, tx, profile.ID, "certifications", "worker_certifications", "certification_id", names(profile.Certifications)); err != nil {
			return err
		}

		if profile.BaseLocation != nil {
			loc := profile.BaseLocation
			if _, err := tx.Exec(ctx, `
				INSERT INTO base_locations (worker_id, address, city, lat, lon)
				VALUES ($1, $2, $3, $4, $5)
			`, profile.ID, loc.Address, loc.City, loc.Lat, loc.Lon); err != nil {
				return fmt.Errorf("failed to insert base location: %w", err)
			}
		}

		if len(profile.ServiceAreas) > 0 {
			rows := make([][]any, 0, len(profile.ServiceAreas))
			for i := range profile.ServiceAreas {
				area := &profile.ServiceAreas[i]
				area.ID = uuid.New()
				rows = append(rows, []any{area.ID, profile.ID, area.City, area.Note})
			}
			if _, err := tx.CopyFrom(ctx,
				pgx.Identifier{"service_areas"},
				[]string{"id", "worker_id", "city", "note"},
				pgx.CopyFromRows(rows),
			); err != nil {
				return fmt.Errorf("failed to insert service areas: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, profile.ID)
}

// linkNamedEntities upserts each name in its entity table and links it to
// the profile. Upserts are idempotent on the unique name.
func (r *postgresRepository) linkNamedEntities(
	ctx context.Context,
	tx pgx.Tx,
	workerID uuid.UUID,
	entityTable, joinTable, joinColumn string,
	entityNames []string,
) error {
	if len(entityNames) == 0 {
		return nil
	}

	upsert := fmt.Sprintf(`
		INSERT INTO %s (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, entityTable)
	link := fmt.Sprintf(`
		INSERT INTO %s (worker_id, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, joinTable, joinColumn)

	for _, name := range entityNames {
		var entityID uuid.UUID
		if err := tx.QueryRow(ctx, upsert, uuid.New(), name).Scan(&entityID); err != nil {
			return fmt.Errorf("failed to upsert %s %q: %w", entityTable, name, err)
		}
		if _, err := tx.Exec(ctx, link, workerID, entityID); err != nil {
			return fmt.Errorf("failed to link %s %q: %w", entityTable, name, err)
		}
	}
	return nil
}

func names(entities []model.NamedEntity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name
	}
	return out
}

// ========================================
// READ
// ========================================

const profileColumns = `
	id, user_id, name, bio, experience_years, active,
	travel_radius_km, metadata, created_at, updated_at
`

func scanProfile(row pgx.Row) (*model.WorkerProfile, error) {
	var p model.WorkerProfile
	var metadata []byte

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Bio,
		&p.ExperienceYears,
		&p.Active,
		&p.TravelRadiusKm,
		&metadata,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		p.Metadata = &model.WorkerMetadata{}
		if err := json.Unmarshal(metadata, p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode profile metadata: %w", err)
		}
	}
	return &p, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, workerID uuid.UUID) (*model.WorkerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM worker_profiles WHERE id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, worker.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to get worker profile: %w", err)
	}

	if err := r.loadAssociations(ctx, []*model.WorkerProfile{profile}); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *postgresRepository) List(ctx context.Context, filters model.ListFilters) ([]*model.WorkerProfile, error) {
	var conditions []string
	var args []any

	if len(filters.Categories) > 0 {
		args = append(args, filters.Categories)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM worker_categories wc
			JOIN categories c ON c.id = wc.category_id
			WHERE wc.worker_id = w.id AND c.name = ANY($%d)
		)`, len(args)))
	}
	if filters.Active != nil {
		args = append(args, *filters.Active)
		conditions = append(conditions, fmt.Sprintf("w.active = $%d", len(args)))
	}

	query := `SELECT ` + profileColumns + ` FROM worker_profiles w`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY w.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.WorkerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read worker profiles: %w", err)
	}

	if err := r.loadAssociations(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// loadAssociations batch-loads every association for the given profiles
// in one query per relation.
func (r *postgresRepository) loadAssociations(ctx context.Context, profiles []*model.WorkerProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(profiles))
	byID := make(map[uuid.UUID]*model.WorkerProfile, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
		byID[p.ID] = p
		// Non-nil slices so absent associations serialize as [].
		p.Categories = []model.NamedEntity{}
		p.Skills = []model.NamedEntity{}
		p.Certifications = []model.NamedEntity{}
		p.ServiceAreas = []model.ServiceArea{}
	}

	type entityDest func(p *model.WorkerProfile, e model.NamedEntity)
	loadEntities := func(entityTable, joinTable, joinColumn string, assign entityDest) error {
		query := fmt.Sprintf(`
			SELECT j.worker_id, e.id, e.name
			FROM %s j JOIN %s e ON e.id = j.%s
			WHERE j.worker_id = ANY($1)
			ORDER BY e.name
		`, joinTable, entityTable, joinColumn)

		rows, err := r.pool.Query(ctx, query, ids)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", entityTable, err)
		}
		defer rows.Close()

		for rows.Next() {
			var workerID uuid.UUID
			var e model.NamedEntity
			if err := rows.Scan(&workerID, &e.ID, &e.Name); err != nil {
				return fmt.Errorf("failed to scan %s: %w", entityTable, err)
			}
			if p, ok := byID[workerID]; ok {
				assign(p, e)
			}
		}
		return rows.Err()
	}

	if err := loadEntities("categories", "worker_categories", "category_id",
		func(p *model.WorkerProfile, e model.NamedEntity) { p.Categories = append(p.Categories, e) }); err != nil {
		return err
	}
	if err := loadEntities("skills", "worker_skills", "skill_id",
		func(p *model.WorkerProfile, e model.NamedEntity) { p.Skills = append(p.Skills, e) }); err != nil {
		return err
	}
	if err := loadEntities("certifications", "worker_certifications", "certification_id",
		func(p *model.WorkerProfile, e model.NamedEntity) { p.Certifications = append(p.Certifications, e) }); err != nil {
		return err
	}

	locRows, err := r.pool.Query(ctx, `
		SELECT worker_id, address, city, lat, lon
		FROM base_locations WHERE worker_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load base locations: %w", err)
	}
	defer locRows.Close()
	for locRows.Next() {
		var workerID uuid.UUID
		var loc model.BaseLocation
		if err := locRows.Scan(&workerID, &loc.Address, &loc.City, &loc.Lat, &loc.Lon); err != nil {
			return fmt.Errorf("failed to scan base location: %w", err)
		}
		if p, ok := byID[workerID]; ok {
			p.BaseLocation = &loc
		}
	}
	if err := locRows.Err(); err != nil {
		return err
	}

	areaRows, err := r.pool.Query(ctx, `
		SELECT id, worker_id, city, note
		FROM service_areas WHERE worker_id = ANY($1)
		ORDER BY city
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load service areas: %w", err)
	}
	defer areaRows.Close()
	for areaRows.Next() {
		var workerID uuid.UUID
		var area model.ServiceArea
		if err := areaRows.Scan(&area.ID, &workerID, &area.City, &area.Note); err != nil {
			return fmt.Errorf("failed to scan service area: %w", err)
		}
		if p, ok := byID[workerID]; ok {
			p.ServiceAreas = append(p.ServiceAreas, area)
		}
	}
	return areaRows.Err()
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) UpdateScalars(ctx context.Context, workerID uuid.UUID, req model.UpdateWorkerRequest) (*model.WorkerProfile, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Bio != nil {
		add("bio", *req.Bio)
	}
	if req.ExperienceYears != nil {
		add("experience_years", *req.ExperienceYears)
	}
	if req.TravelRadiusKm != nil {
		add("travel_radius_km", *req.TravelRadiusKm)
	}
	if req.Active != nil {
		add("active", *req.Active)
	}
	if req.Metadata != nil {
		metadata, err := marshalMetadata(req.Metadata)
		if err != nil {
			return nil, err
		}
		add("metadata", metadata)
	}

	if len(sets) > 0 {
		add("updated_at", time.Now().UTC())
		args = append(args, workerID)
		query := fmt.Sprintf(
			"UPDATE worker_profiles SET %s WHERE id = $%d",
			strings.Join(sets, ", "), len(args),
		)

		tag, err := r.pool.Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update worker profile: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, worker.ErrWorkerNotFound
		}
	}

	return r.GetByID(ctx, workerID)
}

// ========================================
// DELETE
// ========================================

func (r *postgresRepository) Delete(ctx context.Context, workerID uuid.UUID) error {
	// Associated rows cascade via foreign keys.
	tag, err := r.pool.Exec(ctx, `DELETE FROM worker_profiles WHERE id = $1`, workerID)
	if err != nil {
		return fmt.Errorf("failed to delete worker profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// ========================================
// OWNER LOOKUP
// ========================================

func (r *postgresRepository) GetOwner(ctx context.Context, workerID uuid.UUID) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM worker_profiles WHERE id = $1`, workerID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, worker.ErrWorkerNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get worker owner: %w", err)
	}
	return userID, nil
}

func marshalMetadata(m *model.WorkerMetadata) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile metadata: %w", err)
	}
	return data, nil
}
