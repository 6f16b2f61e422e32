package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assessment"
)

type assessmentRow struct {
	ID            string    `db:"id"`
	ComponentID   string    `db:"component_id"`
	SubjectID     string    `db:"subject_id"`
	Kind          string    `db:"kind"`
	OccursOn      string    `db:"occurs_on"`
	Tag           string    `db:"tag"`
	MaxScore      float64   `db:"max_score"`
	MandatoryPass bool      `db:"mandatory_pass"`
	Contribution  float64   `db:"contribution"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r assessmentRow) toComponent() assessment.Component {
	return assessment.Component{
		ID:            r.ID,
		ComponentID:   r.ComponentID,
		SubjectID:     r.SubjectID,
		Kind:          r.Kind,
		OccursOn:      r.OccursOn,
		Tag:           r.Tag,
		MaxScore:      r.MaxScore,
		MandatoryPass: r.MandatoryPass,
		Contribution:  assessment.Percent(r.Contribution),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func newAssessmentRow(comp assessment.Component) assessmentRow {
	return assessmentRow{
		ID:            comp.ID,
		ComponentID:   comp.ComponentID,
		SubjectID:     comp.SubjectID,
		Kind:          comp.Kind,
		OccursOn:      comp.OccursOn,
		Tag:           comp.Tag,
		MaxScore:      comp.MaxScore,
		MandatoryPass: comp.MandatoryPass,
		Contribution:  float64(comp.Contribution),
		CreatedAt:     comp.CreatedAt,
		UpdatedAt:     comp.UpdatedAt,
	}
}

type assessmentRepository struct {
	db *sqlx.DB
}

var _ assessment.Repository = (*assessmentRepository)(nil)

func NewAssessmentRepository(db *sqlx.DB) assessment.Repository {
	return &assessmentRepository{db: db}
}

func (repo *assessmentRepository) CreateComponent(ctx context.Context, comp assessment.Component) (assessment.Component, error) {
	comp.ID = uuid.New().String()
	const q = `
INSERT INTO assessment (id, component_id, subject_id, kind, occurs_on, tag, max_score, mandatory_pass, contribution, created_at, updated_at)
VALUES (:id, :component_id, :subject_id, :kind, :occurs_on, :tag, :max_score, :mandatory_pass, :contribution, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, newAssessmentRow(comp)); err != nil {
		return assessment.Component{}, errors.Wrap(err, "creating assessment")
	}
	return comp, nil
}

func (repo *assessmentRepository) selectComponents(ctx context.Context, q string, args ...interface{}) ([]assessment.Component, error) {
	var rows []assessmentRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying assessments")
	}
	comps := make([]assessment.Component, 0, len(rows))
	for _, row := range rows {
		comps = append(comps, row.toComponent())
	}
	return comps, nil
}

func (repo *assessmentRepository) QueryAllComponents(ctx context.Context) ([]assessment.Component, error) {
	return repo.selectComponents(ctx, `SELECT * FROM assessment`)
}

func (repo *assessmentRepository) getComponent(ctx context.Context, q string, args ...interface{}) (assessment.Component, error) {
	var row assessmentRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return assessment.Component{}, assessment.ErrNotFound
		}
		return assessment.Component{}, errors.Wrap(err, "getting assessment")
	}
	return row.toComponent(), nil
}

func (repo *assessmentRepository) GetComponentByID(ctx context.Context, id string) (assessment.Component, error) {
	return repo.getComponent(ctx, `SELECT * FROM assessment WHERE id = $1`, id)
}

func (repo *assessmentRepository) GetComponentByIdentity(ctx context.Context, componentID, subjectID string) (assessment.Component, error) {
	return repo.getComponent(ctx, `SELECT * FROM assessment WHERE component_id = $1 AND subject_id = $2`, componentID, subjectID)
}

func (repo *assessmentRepository) FilterComponents(ctx context.Context, filter assessment.QueryFilter) ([]assessment.Component, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + itoa(len(args))
	}

	if filter.SubjectID != "" {
		conds = append(conds, "subject_id = "+arg(filter.SubjectID))
	}
	if filter.ComponentID != "" {
		conds = append(conds, "component_id = "+arg(filter.ComponentID))
	}
	if filter.Kind != "" {
		conds = append(conds, "kind = "+arg(filter.Kind))
	}
	if filter.Tag != "" {
		conds = append(conds, "tag = "+arg(filter.Tag))
	}

	q := `SELECT * FROM assessment`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	return repo.selectComponents(ctx, q, args...)
}

func (repo *assessmentRepository) QueryComponentsBySubject(ctx context.Context, subjectID string) ([]assessment.Component, error) {
	return repo.selectComponents(ctx, `SELECT * FROM assessment WHERE subject_id = $1`, subjectID)
}

func (repo *assessmentRepository) UpdateComponent(ctx context.Context, comp assessment.Component) (assessment.Component, error) {
	const q = `
UPDATE assessment
SET component_id   = :component_id,
    subject_id     = :subject_id,
    kind           = :kind,
    occurs_on      = :occurs_on,
    tag            = :tag,
    max_score      = :max_score,
    mandatory_pass = :mandatory_pass,
    contribution   = :contribution,
    updated_at     = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newAssessmentRow(comp))
	if err != nil {
		return assessment.Component{}, errors.Wrap(err, "updating assessment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assessment.Component{}, assessment.ErrNotFound
	}
	return comp, nil
}

func (repo *assessmentRepository) DeleteComponent(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM assessment WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting assessment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assessment.ErrNotFound
	}
	return nil
}
