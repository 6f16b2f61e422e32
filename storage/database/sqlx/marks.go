package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/marks"
)

type marksRow struct {
	ID         string    `db:"id"`
	StudentID  string    `db:"student_id"`
	SubjectID  string    `db:"subject_id"`
	Components []byte    `db:"components"` // JSONB
	Total      float64   `db:"total"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r marksRow) toRecord() (marks.Record, error) {
	rec := marks.Record{
		ID:        r.ID,
		StudentID: r.StudentID,
		SubjectID: r.SubjectID,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.Components) > 0 {
		if err := json.Unmarshal(r.Components, &rec.Components); err != nil {
			return marks.Record{}, errors.Wrap(err, "decoding components")
		}
	}
	return rec, nil
}

func newMarksRow(rec marks.Record) (marksRow, error) {
	components, err := json.Marshal(rec.Components)
	if err != nil {
		return marksRow{}, errors.Wrap(err, "encoding components")
	}
	return marksRow{
		ID:         rec.ID,
		StudentID:  rec.StudentID,
		SubjectID:  rec.SubjectID,
		Components: components,
		Total:      rec.Total,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

type marksRepository struct {
	db *sqlx.DB
}

var _ marks.Repository = (*marksRepository)(nil)

func NewMarksRepository(db *sqlx.DB) marks.Repository {
	return &marksRepository{db: db}
}

func (repo *marksRepository) CreateRecord(ctx context.Context, rec marks.Record) (marks.Record, error) {
	rec.ID = uuid.New().String()
	row, err := newMarksRow(rec)
	if err != nil {
		return marks.Record{}, err
	}
	const q = `
INSERT INTO marks (id, student_id, subject_id, components, total, created_at, updated_at)
VALUES (:id, :student_id, :subject_id, :components, :total, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return marks.Record{}, errors.Wrap(err, "creating marks")
	}
	return rec, nil
}

func (repo *marksRepository) selectRecords(ctx context.Context, q string, args ...interface{}) ([]marks.Record, error) {
	var rows []marksRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying marks")
	}
	recs := make([]marks.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (repo *marksRepository) QueryAllRecords(ctx context.Context) ([]marks.Record, error) {
	return repo.selectRecords(ctx, `SELECT * FROM marks`)
}

func (repo *marksRepository) getRecord(ctx context.Context, q string, args ...interface{}) (marks.Record, error) {
	var row marksRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return marks.Record{}, marks.ErrNotFound
		}
		return marks.Record{}, errors.Wrap(err, "getting marks")
	}
	return row.toRecord()
}

func (repo *marksRepository) GetRecordByID(ctx context.Context, id string) (marks.Record, error) {
	return repo.getRecord(ctx, `SELECT * FROM marks WHERE id = $1`, id)
}

func (repo *marksRepository) GetRecordByIdentity(ctx context.Context, studentID, subjectID string) (marks.Record, error) {
	return repo.getRecord(ctx, `SELECT * FROM marks WHERE student_id = $1 AND subject_id = $2`, studentID, subjectID)
}

func (repo *marksRepository) QueryRecordsByStudent(ctx context.Context, studentID string) ([]marks.Record, error) {
	return repo.selectRecords(ctx, `SELECT * FROM marks WHERE student_id = $1`, studentID)
}

func (repo *marksRepository) QueryRecordsBySubject(ctx context.Context, subjectID string) ([]marks.Record, error) {
	return repo.selectRecords(ctx, `SELECT * FROM marks WHERE subject_id = $1`, subjectID)
}

func (repo *marksRepository) UpdateRecord(ctx context.Context, rec marks.Record) (marks.Record, error) {
	row, err := newMarksRow(rec)
	if err != nil {
		return marks.Record{}, err
	}
	const q = `
UPDATE marks
SET student_id = :student_id,
    subject_id = :subject_id,
    components = :components,
    total      = :total,
    updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return marks.Record{}, errors.Wrap(err, "updating marks")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return marks.Record{}, marks.ErrNotFound
	}
	return rec, nil
}

func (repo *marksRepository) DeleteRecord(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM marks WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting marks")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return marks.ErrNotFound
	}
	return nil
}
