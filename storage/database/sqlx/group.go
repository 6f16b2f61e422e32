package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/group"
)

type groupRow struct {
	ID         string         `db:"id"`
	GroupID    string         `db:"group_id"`
	Tag        string         `db:"tag"`
	SubjectID  string         `db:"subject_id"`
	FacultyIDs pq.StringArray `db:"faculty_ids"`
	Students   []byte         `db:"students"` // JSONB
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r groupRow) toGroup() (group.Group, error) {
	grp := group.Group{
		ID:         r.ID,
		GroupID:    r.GroupID,
		Tag:        r.Tag,
		SubjectID:  r.SubjectID,
		FacultyIDs: r.FacultyIDs,
		Students:   make(map[string]string),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if len(r.Students) > 0 {
		if err := json.Unmarshal(r.Students, &grp.Students); err != nil {
			return group.Group{}, errors.Wrap(err, "decoding roster")
		}
	}
	return grp, nil
}

func newGroupRow(grp group.Group) (groupRow, error) {
	students, err := json.Marshal(grp.Students)
	if err != nil {
		return groupRow{}, errors.Wrap(err, "encoding roster")
	}
	return groupRow{
		ID:         grp.ID,
		GroupID:    grp.GroupID,
		Tag:        grp.Tag,
		SubjectID:  grp.SubjectID,
		FacultyIDs: grp.FacultyIDs,
		Students:   students,
		CreatedAt:  grp.CreatedAt,
		UpdatedAt:  grp.UpdatedAt,
	}, nil
}

type groupRepository struct {
	db *sqlx.DB
}

var _ group.Repository = (*groupRepository)(nil)

func NewGroupRepository(db *sqlx.DB) group.Repository {
	return &groupRepository{db: db}
}

func (repo *groupRepository) CreateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	grp.ID = uuid.New().String()
	row, err := newGroupRow(grp)
	if err != nil {
		return group.Group{}, err
	}
	const q = `
INSERT INTO "group" (id, group_id, tag, subject_id, faculty_ids, students, created_at, updated_at)
VALUES (:id, :group_id, :tag, :subject_id, :faculty_ids, :students, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return group.Group{}, errors.Wrap(err, "creating group")
	}
	return grp, nil
}

func (repo *groupRepository) QueryAllGroups(ctx context.Context) ([]group.Group, error) {
	var rows []groupRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM "group"`); err != nil {
		return nil, errors.Wrap(err, "querying groups")
	}
	groups := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		grp, err := row.toGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, grp)
	}
	return groups, nil
}

func (repo *groupRepository) getGroup(ctx context.Context, q string, args ...interface{}) (group.Group, error) {
	var row groupRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, errors.Wrap(err, "getting group")
	}
	return row.toGroup()
}

func (repo *groupRepository) GetGroupByID(ctx context.Context, id string) (group.Group, error) {
	return repo.getGroup(ctx, `SELECT * FROM "group" WHERE id = $1`, id)
}

func (repo *groupRepository) GetGroupByGroupID(ctx context.Context, groupID string) (group.Group, error) {
	return repo.getGroup(ctx, `SELECT * FROM "group" WHERE group_id = $1`, groupID)
}

func (repo *groupRepository) UpdateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	row, err := newGroupRow(grp)
	if err != nil {
		return group.Group{}, err
	}
	const q = `
UPDATE "group"
SET group_id    = :group_id,
    tag         = :tag,
    subject_id  = :subject_id,
    faculty_ids = :faculty_ids,
    students    = :students,
    updated_at  = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return group.Group{}, errors.Wrap(err, "updating group")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return group.Group{}, group.ErrNotFound
	}
	return grp, nil
}

func (repo *groupRepository) DeleteGroup(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM "group" WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting group")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return group.ErrNotFound
	}
	return nil
}
