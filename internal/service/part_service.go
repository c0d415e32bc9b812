package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/partsgarage/inventory-api/internal/model"
)

// partStore is the slice of the part repository the service needs.
type partStore interface {
	Create(ctx context.Context, p model.CarPart) error
	GetByNumber(ctx context.Context, partNumber uint64) (model.CarPart, error)
	ListAll(ctx context.Context) ([]model.CarPart, error)
	Exists(ctx context.Context, partNumber uint64) (bool, error)
	UpdateName(ctx context.Context, partNumber uint64, name string) error
	Delete(ctx context.Context, partNumber uint64) error
}

// PartService implements the car part lifecycle. The part number is a
// caller-supplied identity and immutable once created; the only field
// updates ever touch is the name.
type PartService struct {
	parts partStore
}

// NewPartService builds a PartService over the given store.
func NewPartService(parts partStore) *PartService {
	return &PartService{parts: parts}
}

// ParsePartNumber converts a caller-supplied string into a part
// number. Anything that is not a positive decimal integer is a
// validation error.
func ParsePartNumber(s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: part number must be a positive integer", model.ErrValidation)
	}
	return n, nil
}

// Create registers a new part. A blank condition defaults to
// "unknown"; an image string that does not parse as an absolute
// http(s) URL is stored as NULL rather than rejected.
func (s *PartService) Create(ctx context.Context, partNumber uint64, name, condition, imageURL string) (model.CarPart, error) {
	name = strings.TrimSpace(name)
	if partNumber == 0 {
		return model.CarPart{}, fmt.Errorf("%w: part number must be a positive integer", model.ErrValidation)
	}
	if name == "" {
		return model.CarPart{}, fmt.Errorf("%w: part name is required", model.ErrValidation)
	}
	condition = strings.TrimSpace(condition)
	if condition == "" {
		condition = model.ConditionUnknown
	}

	p := model.CarPart{
		PartNumber: partNumber,
		Name:       name,
		Condition:  condition,
		Image:      normalizeImageURL(imageURL),
	}
	if err := s.parts.Create(ctx, p); err != nil {
		return model.CarPart{}, wrapStore(err)
	}
	return p, nil
}

// FindByNumber looks a part up by number. Absence is a valid outcome:
// the result slice is simply empty, never an error.
func (s *PartService) FindByNumber(ctx context.Context, partNumber uint64) ([]model.CarPart, error) {
	if partNumber == 0 {
		return nil, fmt.Errorf("%w: part number must be a positive integer", model.ErrValidation)
	}
	p, err := s.parts.GetByNumber(ctx, partNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.CarPart{}, nil
		}
		return nil, wrapStore(err)
	}
	return []model.CarPart{p}, nil
}

// ListAll returns the whole catalogue.
func (s *PartService) ListAll(ctx context.Context) ([]model.CarPart, error) {
	out, err := s.parts.ListAll(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return out, nil
}

// UpdateName renames a part. Existence is checked explicitly before
// the write, since an UPDATE on a missing row is not an error for the
// store; the refreshed record is returned.
func (s *PartService) UpdateName(ctx context.Context, partNumber uint64, newName string) (model.CarPart, error) {
	newName = strings.TrimSpace(newName)
	if partNumber == 0 {
		return model.CarPart{}, fmt.Errorf("%w: part number must be a positive integer", model.ErrValidation)
	}
	if newName == "" {
		return model.CarPart{}, fmt.Errorf("%w: part name is required", model.ErrValidation)
	}
	exists, err := s.parts.Exists(ctx, partNumber)
	if err != nil {
		return model.CarPart{}, wrapStore(err)
	}
	if !exists {
		return model.CarPart{}, fmt.Errorf("%w: part %d", model.ErrNotFound, partNumber)
	}
	if err := s.parts.UpdateName(ctx, partNumber, newName); err != nil {
		return model.CarPart{}, wrapStore(err)
	}
	p, err := s.parts.GetByNumber(ctx, partNumber)
	if err != nil {
		return model.CarPart{}, wrapStore(err)
	}
	return p, nil
}

// Delete removes a part and, first, every project association that
// references it, so no orphan association survives.
func (s *PartService) Delete(ctx context.Context, partNumber uint64) error {
	if partNumber == 0 {
		return fmt.Errorf("%w: part number must be a positive integer", model.ErrValidation)
	}
	if err := s.parts.Delete(ctx, partNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: part %d", model.ErrNotFound, partNumber)
		}
		return wrapStore(err)
	}
	return nil
}

// GetByNumber exposes single-part resolution to the project service.
// sql.ErrNoRows passes through for the caller to interpret.
func (s *PartService) GetByNumber(ctx context.Context, partNumber uint64) (model.CarPart, error) {
	return s.parts.GetByNumber(ctx, partNumber)
}

// normalizeImageURL returns a NULL string unless raw parses as an
// absolute http or https URL.
func normalizeImageURL(raw string) sql.NullString {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sql.NullString{}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
