package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/schoolclass"
)

type classRepository struct {
	db *classTable
}

var _ schoolclass.Repository = (*classRepository)(nil)

func NewClassRepository(db *DB) schoolclass.Repository {
	return &classRepository{db: db.class}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls schoolclass.Class) (schoolclass.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls.ID = uuid.New().String()
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]schoolclass.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]schoolclass.Class, 0, len(repo.db.table))
	for _, cls := range repo.db.table {
		classes = append(classes, *cls)
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (schoolclass.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return *cls, nil
	}
	return schoolclass.Class{}, schoolclass.ErrNotFound
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls schoolclass.Class) (schoolclass.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cls.ID]; !ok {
		return schoolclass.Class{}, schoolclass.ErrNotFound
	}
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return schoolclass.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
