package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/marks"
)

type marksRepository struct {
	db *marksTable
}

var _ marks.Repository = (*marksRepository)(nil)

func NewMarksRepository(db *DB) marks.Repository {
	return &marksRepository{db: db.marks}
}

// copyRecord snapshots a record so callers cannot mutate the stored
// components slice through a returned value.
func copyRecord(rec marks.Record) marks.Record {
	cp := rec
	cp.Components = make([]marks.ComponentScore, len(rec.Components))
	copy(cp.Components, rec.Components)
	return cp
}

func (repo *marksRepository) CreateRecord(ctx context.Context, rec marks.Record) (marks.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec.ID = uuid.New().String()
	stored := copyRecord(rec)
	repo.db.table[rec.ID] = &stored
	return rec, nil
}

func (repo *marksRepository) QueryAllRecords(ctx context.Context) ([]marks.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := make([]marks.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		recs = append(recs, copyRecord(*rec))
	}
	return recs, nil
}

func (repo *marksRepository) GetRecordByID(ctx context.Context, id string) (marks.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		return copyRecord(*rec), nil
	}
	return marks.Record{}, marks.ErrNotFound
}

func (repo *marksRepository) GetRecordByIdentity(ctx context.Context, studentID, subjectID string) (marks.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.table {
		if rec.StudentID == studentID && rec.SubjectID == subjectID {
			return copyRecord(*rec), nil
		}
	}
	return marks.Record{}, marks.ErrNotFound
}

func (repo *marksRepository) QueryRecordsByStudent(ctx context.Context, studentID string) ([]marks.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var recs []marks.Record
	for _, rec := range repo.db.table {
		if rec.StudentID == studentID {
			recs = append(recs, copyRecord(*rec))
		}
	}
	return recs, nil
}

func (repo *marksRepository) QueryRecordsBySubject(ctx context.Context, subjectID string) ([]marks.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var recs []marks.Record
	for _, rec := range repo.db.table {
		if rec.SubjectID == subjectID {
			recs = append(recs, copyRecord(*rec))
		}
	}
	return recs, nil
}

func (repo *marksRepository) UpdateRecord(ctx context.Context, rec marks.Record) (marks.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rec.ID]; !ok {
		return marks.Record{}, marks.ErrNotFound
	}
	stored := copyRecord(rec)
	repo.db.table[rec.ID] = &stored
	return rec, nil
}

func (repo *marksRepository) DeleteRecord(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return marks.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
