package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/partsgarage/inventory-api/internal/model"
)

// PartRepo encapsulates all database queries against the car_parts
// table. The part number is the caller-supplied primary key; there is
// no auto-increment column here.
type PartRepo struct {
	db *sql.DB
}

// NewPartRepo constructs a PartRepo with the provided DB handle.
func NewPartRepo(db *sql.DB) *PartRepo {
	return &PartRepo{db: db}
}

// Create inserts a new car part. The service layer has already
// defaulted the condition and validated the fields. A MySQL 1062
// duplicate-key error on the part number maps to model.ErrIntegrity.
func (r *PartRepo) Create(ctx context.Context, p model.CarPart) error {
	const q = "INSERT INTO car_parts (part_number, name, cond, image) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, p.PartNumber, p.Name, p.Condition, p.Image)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return model.ErrIntegrity
	}
	return err
}

// GetByNumber fetches a part by its number. sql.ErrNoRows passes
// through when no row matches.
func (r *PartRepo) GetByNumber(ctx context.Context, partNumber uint64) (model.CarPart, error) {
	const q = "SELECT part_number, name, cond, image FROM car_parts WHERE part_number = ?"
	var p model.CarPart
	err := r.db.QueryRowContext(ctx, q, partNumber).Scan(&p.PartNumber, &p.Name, &p.Condition, &p.Image)
	return p, err
}

// ListAll returns every part ordered by part number.
func (r *PartRepo) ListAll(ctx context.Context) ([]model.CarPart, error) {
	const q = "SELECT part_number, name, cond, image FROM car_parts ORDER BY part_number"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CarPart
	for rows.Next() {
		var p model.CarPart
		if err := rows.Scan(&p.PartNumber, &p.Name, &p.Condition, &p.Image); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a part row with the given number exists.
func (r *PartRepo) Exists(ctx context.Context, partNumber uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM car_parts WHERE part_number = ? LIMIT 1", partNumber).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateName changes a part's name. RowsAffected is not inspected:
// MySQL reports 0 both for a missing row and for a name that did not
// change, so the service performs the existence check before calling
// this.
func (r *PartRepo) UpdateName(ctx context.Context, partNumber uint64, name string) error {
	const q = "UPDATE car_parts SET name = ? WHERE part_number = ?"
	_, err := r.db.ExecContext(ctx, q, name, partNumber)
	return err
}

// Delete removes a part together with its project associations. The
// association rows go first, inside one transaction, so the part row
// never disappears while part_project still references it. Returns
// sql.ErrNoRows when the part does not exist.
func (r *PartRepo) Delete(ctx context.Context, partNumber uint64) error {
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
		"DELETE FROM part_project WHERE part_number = ?", partNumber); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx,
		"DELETE FROM car_parts WHERE part_number = ?", partNumber); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = sql.ErrNoRows
		return err
	}
	return nil
}
