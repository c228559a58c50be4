package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/roleready/roleready-api/internal/models"
	"go.uber.org/zap"
)

// RoleRepository handles target roles and their benchmark skills
type RoleRepository struct {
	db TxBeginner
}

func NewRoleRepository(db TxBeginner) *RoleRepository {
	return &RoleRepository{db: db}
}

// List returns roles with benchmarks, ordered by name
func (r *RoleRepository) List(ctx context.Context, onlyActive bool) ([]*models.Role, error) {
	start := time.Now()

	query := `SELECT ` + models.RoleColumns + ` FROM roles`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY lower(name)`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		observe("listRoles", start, err)
		return nil, err
	}

	roles := []*models.Role{}
	byID := map[string]*models.Role{}
	for rows.Next() {
		role, err := models.ScanRole(rows)
		if err != nil {
			rows.Close()
			observe("listRoles", start, err)
			return nil, err
		}
		roles = append(roles, role)
		byID[role.ID] = role
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		observe("listRoles", start, err)
		return nil, err
	}

	if len(roles) > 0 {
		ids := make([]string, 0, len(roles))
		for _, role := range roles {
			ids = append(ids, role.ID)
		}
		benchmarks, err := r.loadBenchmarks(ctx, r.db, ids)
		if err != nil {
			observe("listRoles", start, err)
			return nil, err
		}
		for roleID, bs := range benchmarks {
			byID[roleID].Benchmarks = bs
		}
	}

	observe("listRoles", start, nil)
	return roles, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	return r.get(ctx, r.db, id)
}

func (r *RoleRepository) get(ctx context.Context, q Querier, id string) (*models.Role, error) {
	start := time.Now()
	role, err := models.ScanRole(q.QueryRow(ctx, `SELECT `+models.RoleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		observe("getRole", start, err, zap.String("role_id", id))
		return nil, mapError(err, "role")
	}

	benchmarks, err := r.loadBenchmarks(ctx, q, []string{id})
	observe("getRole", start, err, zap.String("role_id", id))
	if err != nil {
		return nil, err
	}
	if bs, ok := benchmarks[id]; ok {
		role.Benchmarks = bs
	}
	return role, nil
}

// Create inserts a role and its benchmarks in one transaction
func (r *RoleRepository) Create(ctx context.Context, req *models.RoleRequest) (*models.Role, error) {
	start := time.Now()
	active := req.IsActive == nil || *req.IsActive

	var created *models.Role
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx, `
			INSERT INTO roles (name, description, category, is_active)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			strings.TrimSpace(req.Name), req.Description, req.Category, active,
		).Scan(&id)
		if err != nil {
			return err
		}
		if err := replaceBenchmarks(ctx, tx, id, req.Benchmarks); err != nil {
			return err
		}
		created, err = r.get(ctx, tx, id)
		return err
	})
	observe("createRole", start, err)
	if err != nil {
		return nil, mapError(err, "role")
	}
	return created, nil
}

// Update changes role fields; benchmarks are replaced only when non-nil
func (r *RoleRepository) Update(ctx context.Context, id string, req *models.RoleRequest) (*models.Role, error) {
	start := time.Now()

	var updated *models.Role
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE roles
			SET name = $2, description = $3, category = $4,
			    is_active = COALESCE($5, is_active), updated_at = NOW()
			WHERE id = $1`,
			id, strings.TrimSpace(req.Name), req.Description, req.Category, req.IsActive)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if req.Benchmarks != nil {
			if err := replaceBenchmarks(ctx, tx, id, req.Benchmarks); err != nil {
				return err
			}
		}
		updated, err = r.get(ctx, tx, id)
		return err
	})
	observe("updateRole", start, err, zap.String("role_id", id))
	if err != nil {
		return nil, mapError(err, "role")
	}
	return updated, nil
}

// ReplaceBenchmarks swaps the whole benchmark set of a role
func (r *RoleRepository) ReplaceBenchmarks(ctx context.Context, id string, benchmarks []models.Benchmark) (*models.Role, error) {
	start := time.Now()

	var updated *models.Role
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		if err := replaceBenchmarks(ctx, tx, id, benchmarks); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE roles SET updated_at = NOW() WHERE id = $1`, id); err != nil {
			return err
		}
		var err error
		updated, err = r.get(ctx, tx, id)
		return err
	})
	observe("replaceBenchmarks", start, err, zap.String("role_id", id))
	if err != nil {
		return nil, mapError(err, "role")
	}
	return updated, nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, "deleteRole", "role", `DELETE FROM roles WHERE id = $1`, id)
}

func replaceBenchmarks(ctx context.Context, tx pgx.Tx, roleID string, benchmarks []models.Benchmark) error {
	if _, err := tx.Exec(ctx, `DELETE FROM role_benchmarks WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	if len(benchmarks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, b := range benchmarks {
		batch.Queue(`
			INSERT INTO role_benchmarks (role_id, skill_id, importance, weight, required_level, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			roleID, b.SkillID, b.Importance, b.Weight, b.RequiredLevel, i)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (r *RoleRepository) loadBenchmarks(ctx context.Context, q Querier, roleIDs []string) (map[string][]models.Benchmark, error) {
	rows, err := q.Query(ctx, `
		SELECT rb.role_id, rb.skill_id, s.name, rb.importance, rb.weight, rb.required_level
		FROM role_benchmarks rb
		JOIN skills s ON s.id = rb.skill_id
		WHERE rb.role_id = ANY($1::uuid[])
		ORDER BY rb.role_id, rb.position`, roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]models.Benchmark{}
	for rows.Next() {
		var roleID string
		var b models.Benchmark
		if err := rows.Scan(&roleID, &b.SkillID, &b.SkillName, &b.Importance, &b.Weight, &b.RequiredLevel); err != nil {
			return nil, err
		}
		out[roleID] = append(out[roleID], b)
	}
	return out, rows.Err()
}
