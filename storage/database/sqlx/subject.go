package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/subject"
)

type subjectRow struct {
	ID          string    `db:"id"`
	SubjectID   string    `db:"subject_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r subjectRow) toSubject() subject.Subject {
	return subject.Subject(r)
}

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	sub.ID = uuid.New().String()
	const q = `
INSERT INTO subject (id, subject_id, name, description, created_at, updated_at)
VALUES (:id, :subject_id, :name, :description, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, subjectRow(sub)); err != nil {
		return subject.Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects(ctx context.Context) ([]subject.Subject, error) {
	var rows []subjectRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM subject`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subs := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toSubject())
	}
	return subs, nil
}

func (repo *subjectRepository) getSubject(ctx context.Context, q string, args ...interface{}) (subject.Subject, error) {
	var row subjectRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject")
	}
	return row.toSubject(), nil
}

func (repo *subjectRepository) GetSubjectByID(ctx context.Context, id string) (subject.Subject, error) {
	return repo.getSubject(ctx, `SELECT * FROM subject WHERE id = $1`, id)
}

func (repo *subjectRepository) GetSubjectBySubjectID(ctx context.Context, subjectID string) (subject.Subject, error) {
	return repo.getSubject(ctx, `SELECT * FROM subject WHERE subject_id = $1`, subjectID)
}

func (repo *subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	const q = `
UPDATE subject
SET subject_id  = :subject_id,
    name        = :name,
    description = :description,
    updated_at  = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, subjectRow(sub))
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM subject WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.ErrNotFound
	}
	return nil
}
