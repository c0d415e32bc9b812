package service

import (
	"context"
	"database/sql"

	"github.com/partsgarage/inventory-api/internal/model"
)

// Map-backed fakes replicating the storage semantics the services
// rely on: sql.ErrNoRows for absent rows, duplicate detection, and
// the guarded association insert.

type fakeUserStore struct {
	nextID uint64
	byName map[string]model.User
	err    error // when set, every call fails with it
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byName: map[string]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, username, hash string, role model.RoleID) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.byName[username]; ok {
		return 0, model.ErrDuplicateUser
	}
	f.nextID++
	f.byName[username] = model.User{ID: f.nextID, Username: username, PasswordHash: hash, RoleID: role}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	u, ok := f.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) ExistsByID(_ context.Context, id uint64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.byName {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byName[username]
	return ok, nil
}

type fakePartStore struct {
	parts   map[uint64]model.CarPart
	projTab *fakeProjectStore // set by tests that exercise the delete cascade
	err     error
}

func newFakePartStore() *fakePartStore {
	return &fakePartStore{parts: map[uint64]model.CarPart{}}
}

func (f *fakePartStore) Create(_ context.Context, p model.CarPart) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.parts[p.PartNumber]; ok {
		return model.ErrIntegrity
	}
	f.parts[p.PartNumber] = p
	return nil
}

func (f *fakePartStore) GetByNumber(_ context.Context, n uint64) (model.CarPart, error) {
	if f.err != nil {
		return model.CarPart{}, f.err
	}
	p, ok := f.parts[n]
	if !ok {
		return model.CarPart{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePartStore) ListAll(_ context.Context) ([]model.CarPart, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.CarPart, 0, len(f.parts))
	for _, p := range f.parts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePartStore) Exists(_ context.Context, n uint64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.parts[n]
	return ok, nil
}

func (f *fakePartStore) UpdateName(_ context.Context, n uint64, name string) error {
	if f.err != nil {
		return f.err
	}
	if p, ok := f.parts[n]; ok {
		p.Name = name
		f.parts[n] = p
	}
	return nil
}

func (f *fakePartStore) Delete(_ context.Context, n uint64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.parts[n]; !ok {
		return sql.ErrNoRows
	}
	// Mirror the repository cascade: association rows go before the
	// part row.
	if f.projTab != nil {
		for key := range f.projTab.parts {
			if key.b == n {
				delete(f.projTab.parts, key)
			}
		}
	}
	delete(f.parts, n)
	return nil
}

type assoc struct{ a, b uint64 }

type fakeProjectStore struct {
	nextID   uint64
	projects map[uint64]model.Project
	owners   map[assoc]bool // projectID, userID
	parts    map[assoc]bool // projectID, partNumber
	partTab  *fakePartStore // endpoint existence for the guarded insert
	userTab  *fakeUserStore
	err      error
}

func newFakeProjectStore(parts *fakePartStore, users *fakeUserStore) *fakeProjectStore {
	return &fakeProjectStore{
		projects: map[uint64]model.Project{},
		owners:   map[assoc]bool{},
		parts:    map[assoc]bool{},
		partTab:  parts,
		userTab:  users,
	}
}

func (f *fakeProjectStore) Create(_ context.Context, name, description string, ownerUserID uint64) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.projects[f.nextID] = model.Project{ID: f.nextID, Name: name, Description: description}
	f.owners[assoc{f.nextID, ownerUserID}] = true
	return f.nextID, nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id uint64) (model.Project, error) {
	if f.err != nil {
		return model.Project{}, f.err
	}
	p, ok := f.projects[id]
	if !ok {
		return model.Project{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeProjectStore) Exists(_ context.Context, id uint64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.projects[id]
	return ok, nil
}

func (f *fakeProjectStore) ListForUser(_ context.Context, username string) ([]model.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.userTab.byName[username]
	if !ok {
		return nil, nil
	}
	var out []model.Project
	for key := range f.owners {
		if key.b == u.ID {
			out = append(out, f.projects[key.a])
		}
	}
	return out, nil
}

func (f *fakeProjectStore) ListPartNumbers(_ context.Context, id uint64) ([]uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []uint64
	for key := range f.parts {
		if key.a == id {
			out = append(out, key.b)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) AddPart(_ context.Context, projectID, partNumber uint64) error {
	if f.err != nil {
		return f.err
	}
	_, projOK := f.projects[projectID]
	_, partOK := f.partTab.parts[partNumber]
	if !projOK || !partOK {
		if f.parts[assoc{projectID, partNumber}] {
			return nil
		}
		return model.ErrIntegrity
	}
	f.parts[assoc{projectID, partNumber}] = true
	return nil
}

func (f *fakeProjectStore) AddUser(_ context.Context, projectID, userID uint64) error {
	if f.err != nil {
		return f.err
	}
	_, projOK := f.projects[projectID]
	userOK := false
	for _, u := range f.userTab.byName {
		if u.ID == userID {
			userOK = true
		}
	}
	if !projOK || !userOK {
		if f.owners[assoc{projectID, userID}] {
			return nil
		}
		return model.ErrIntegrity
	}
	f.owners[assoc{projectID, userID}] = true
	return nil
}

func (f *fakeProjectStore) Update(_ context.Context, projectID uint64, name, description string) error {
	if f.err != nil {
		return f.err
	}
	if p, ok := f.projects[projectID]; ok {
		p.Name = name
		p.Description = description
		f.projects[projectID] = p
	}
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, projectID uint64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.projects[projectID]; !ok {
		return sql.ErrNoRows
	}
	for key := range f.parts {
		if key.a == projectID {
			delete(f.parts, key)
		}
	}
	for key := range f.owners {
		if key.a == projectID {
			delete(f.owners, key)
		}
	}
	delete(f.projects, projectID)
	return nil
}

func (f *fakeProjectStore) RemovePart(_ context.Context, projectID, partNumber uint64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.parts, assoc{projectID, partNumber})
	return nil
}
