package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/schoolclass"
)

type classRow struct {
	ID               string    `db:"id"`
	ClassTag         string    `db:"class_tag"`
	Strength         int       `db:"strength"`
	Supervisor       string    `db:"supervisor"`
	YearOrSem        string    `db:"year_or_sem"`
	CustomAttributes []byte    `db:"custom_attributes"` // JSONB
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r classRow) toClass() (schoolclass.Class, error) {
	cls := schoolclass.Class{
		ID:         r.ID,
		ClassTag:   r.ClassTag,
		Strength:   r.Strength,
		Supervisor: r.Supervisor,
		YearOrSem:  r.YearOrSem,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if len(r.CustomAttributes) > 0 {
		if err := json.Unmarshal(r.CustomAttributes, &cls.CustomAttributes); err != nil {
			return schoolclass.Class{}, errors.Wrap(err, "decoding custom attributes")
		}
	}
	return cls, nil
}

func newClassRow(cls schoolclass.Class) (classRow, error) {
	attrs, err := json.Marshal(cls.CustomAttributes)
	if err != nil {
		return classRow{}, errors.Wrap(err, "encoding custom attributes")
	}
	return classRow{
		ID:               cls.ID,
		ClassTag:         cls.ClassTag,
		Strength:         cls.Strength,
		Supervisor:       cls.Supervisor,
		YearOrSem:        cls.YearOrSem,
		CustomAttributes: attrs,
		CreatedAt:        cls.CreatedAt,
		UpdatedAt:        cls.UpdatedAt,
	}, nil
}

type classRepository struct {
	db *sqlx.DB
}

var _ schoolclass.Repository = (*classRepository)(nil)

func NewClassRepository(db *sqlx.DB) schoolclass.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls schoolclass.Class) (schoolclass.Class, error) {
	cls.ID = uuid.New().String()
	row, err := newClassRow(cls)
	if err != nil {
		return schoolclass.Class{}, err
	}
	const q = `
INSERT INTO class (id, class_tag, strength, supervisor, year_or_sem, custom_attributes, created_at, updated_at)
VALUES (:id, :class_tag, :strength, :supervisor, :year_or_sem, :custom_attributes, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return schoolclass.Class{}, errors.Wrap(err, "creating class")
	}
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]schoolclass.Class, error) {
	var rows []classRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class`); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]schoolclass.Class, 0, len(rows))
	for _, row := range rows {
		cls, err := row.toClass()
		if err != nil {
			return nil, err
		}
		classes = append(classes, cls)
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (schoolclass.Class, error) {
	var row classRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return schoolclass.Class{}, schoolclass.ErrNotFound
		}
		return schoolclass.Class{}, errors.Wrap(err, "getting class")
	}
	return row.toClass()
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls schoolclass.Class) (schoolclass.Class, error) {
	row, err := newClassRow(cls)
	if err != nil {
		return schoolclass.Class{}, err
	}
	const q = `
UPDATE class
SET class_tag         = :class_tag,
    strength          = :strength,
    supervisor        = :supervisor,
    year_or_sem       = :year_or_sem,
    custom_attributes = :custom_attributes,
    updated_at        = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return schoolclass.Class{}, errors.Wrap(err, "updating class")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schoolclass.Class{}, schoolclass.ErrNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM class WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schoolclass.ErrNotFound
	}
	return nil
}
