package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/assessment"
)

type assessmentRepository struct {
	db *assessmentTable
}

var _ assessment.Repository = (*assessmentRepository)(nil)

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db.assessment}
}

func (repo *assessmentRepository) CreateComponent(ctx context.Context, comp assessment.Component) (assessment.Component, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	comp.ID = uuid.New().String()
	repo.db.table[comp.ID] = &comp
	return comp, nil
}

func (repo *assessmentRepository) QueryAllComponents(ctx context.Context) ([]assessment.Component, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	comps := make([]assessment.Component, 0, len(repo.db.table))
	for _, comp := range repo.db.table {
		comps = append(comps, *comp)
	}
	return comps, nil
}

func (repo *assessmentRepository) GetComponentByID(ctx context.Context, id string) (assessment.Component, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if comp, ok := repo.db.table[id]; ok {
		return *comp, nil
	}
	return assessment.Component{}, assessment.ErrNotFound
}

func (repo *assessmentRepository) GetComponentByIdentity(ctx context.Context, componentID, subjectID string) (assessment.Component, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, comp := range repo.db.table {
		if comp.ComponentID == componentID && comp.SubjectID == subjectID {
			return *comp, nil
		}
	}
	return assessment.Component{}, assessment.ErrNotFound
}

func (repo *assessmentRepository) FilterComponents(ctx context.Context, filter assessment.QueryFilter) ([]assessment.Component, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var matches []assessment.Component
	for _, comp := range repo.db.table {
		if filter.SubjectID != "" && comp.SubjectID != filter.SubjectID {
			continue
		}
		if filter.ComponentID != "" && comp.ComponentID != filter.ComponentID {
			continue
		}
		if filter.Kind != "" && comp.Kind != filter.Kind {
			continue
		}
		if filter.Tag != "" && comp.Tag != filter.Tag {
			continue
		}
		matches = append(matches, *comp)
	}
	return matches, nil
}

func (repo *assessmentRepository) QueryComponentsBySubject(ctx context.Context, subjectID string) ([]assessment.Component, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var comps []assessment.Component
	for _, comp := range repo.db.table {
		if comp.SubjectID == subjectID {
			comps = append(comps, *comp)
		}
	}
	return comps, nil
}

func (repo *assessmentRepository) UpdateComponent(ctx context.Context, comp assessment.Component) (assessment.Component, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[comp.ID]; !ok {
		return assessment.Component{}, assessment.ErrNotFound
	}
	repo.db.table[comp.ID] = &comp
	return comp, nil
}

func (repo *assessmentRepository) DeleteComponent(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return assessment.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
