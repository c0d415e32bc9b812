package repository

import (
	"context"
	"database/sql"

	"github.com/partsgarage/inventory-api/internal/model"
)

// ProjectRepo encapsulates database queries for projects and their two
// association tables (part_project, users_project).
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo constructs a ProjectRepo with the given DB handle.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts a project and its owning users_project row in one
// transaction, so a project can never exist without an owner. Returns
// the new project id.
func (r *ProjectRepo) Create(ctx context.Context, name, description string, ownerUserID uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var res sql.Result
	if res, err = tx.ExecContext(ctx,
		"INSERT INTO projects (name, description) VALUES (?, ?)", name, description); err != nil {
		return 0, err
	}
	var id int64
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO users_project (project_id, user_id) VALUES (?, ?)", id, ownerUserID); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a project by id. sql.ErrNoRows passes through when
// no row matches.
func (r *ProjectRepo) GetByID(ctx context.Context, projectID uint64) (model.Project, error) {
	const q = "SELECT project_id, name, description FROM projects WHERE project_id = ?"
	var p model.Project
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, projectID).Scan(&p.ID, &p.Name, &desc)
	p.Description = desc.String
	return p, err
}

// Exists reports whether a project row with the given id exists.
func (r *ProjectRepo) Exists(ctx context.Context, projectID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM projects WHERE project_id = ? LIMIT 1", projectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForUser returns all projects associated with the given username,
// ordered by id.
func (r *ProjectRepo) ListForUser(ctx context.Context, username string) ([]model.Project, error) {
	const q = `SELECT p.project_id, p.name, p.description
	           FROM projects p
	           JOIN users_project up ON up.project_id = p.project_id
	           JOIN users u ON u.id = up.user_id
	           WHERE u.username = ?
	           ORDER BY p.project_id`
	rows, err := r.db.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &desc); err != nil {
			return nil, err
		}
		p.Description = desc.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPartNumbers returns the part numbers associated with a project,
// ordered ascending. The service resolves each number back through the
// part repository.
func (r *ProjectRepo) ListPartNumbers(ctx context.Context, projectID uint64) ([]uint64, error) {
	const q = "SELECT part_number FROM part_project WHERE project_id = ? ORDER BY part_number"
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var n uint64
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPart links a part to a project. The insert is guarded by the two
// existence checks inside a single statement, so there is no window
// between "verify endpoints" and "insert association" for either row
// to disappear. Zero affected rows means either a missing endpoint
// (model.ErrIntegrity) or an association that already exists, which is
// accepted silently.
func (r *ProjectRepo) AddPart(ctx context.Context, projectID, partNumber uint64) error {
	const q = `INSERT IGNORE INTO part_project (project_id, part_number)
	           SELECT p.project_id, c.part_number
	           FROM projects p
	           JOIN car_parts c ON c.part_number = ?
	           WHERE p.project_id = ?`
	res, err := r.db.ExecContext(ctx, q, partNumber, projectID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.disambiguateZeroInsert(ctx,
			"SELECT 1 FROM part_project WHERE project_id = ? AND part_number = ? LIMIT 1",
			projectID, partNumber)
	}
	return nil
}

// AddUser links a user to a project with the same guarded-insert
// pattern as AddPart.
func (r *ProjectRepo) AddUser(ctx context.Context, projectID, userID uint64) error {
	const q = `INSERT IGNORE INTO users_project (project_id, user_id)
	           SELECT p.project_id, u.id
	           FROM projects p
	           JOIN users u ON u.id = ?
	           WHERE p.project_id = ?`
	res, err := r.db.ExecContext(ctx, q, userID, projectID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.disambiguateZeroInsert(ctx,
			"SELECT 1 FROM users_project WHERE project_id = ? AND user_id = ? LIMIT 1",
			projectID, userID)
	}
	return nil
}

// disambiguateZeroInsert tells a duplicate association (fine, the
// operation is idempotent) apart from a missing endpoint (integrity
// violation).
func (r *ProjectRepo) disambiguateZeroInsert(ctx context.Context, q string, args ...any) error {
	var one int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return model.ErrIntegrity
	}
	return err
}

// Update changes a project's name and description. RowsAffected is
// not inspected: MySQL reports 0 both for a missing row and for an
// update that writes identical values, so the service performs the
// existence check before calling this.
func (r *ProjectRepo) Update(ctx context.Context, projectID uint64, name, description string) error {
	const q = "UPDATE projects SET name = ?, description = ? WHERE project_id = ?"
	_, err := r.db.ExecContext(ctx, q, name, description, projectID)
	return err
}

// Delete removes a project and its associations. Order matters:
// part_project rows, then users_project rows, then the project row,
// all in one transaction, so no dangling association can survive.
// Returns sql.ErrNoRows when the project does not exist.
func (r *ProjectRepo) Delete(ctx context.Context, projectID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM part_project WHERE project_id = ?", projectID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM users_project WHERE project_id = ?", projectID); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx,
		"DELETE FROM projects WHERE project_id = ?", projectID); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = sql.ErrNoRows
		return err
	}
	return nil
}

// RemovePart deletes a single association row. Removing an absent
// association is a no-op, which makes the operation idempotent.
func (r *ProjectRepo) RemovePart(ctx context.Context, projectID, partNumber uint64) error {
	const q = "DELETE FROM part_project WHERE project_id = ? AND part_number = ?"
	_, err := r.db.ExecContext(ctx, q, projectID, partNumber)
	return err
}
