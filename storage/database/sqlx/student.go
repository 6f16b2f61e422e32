package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/student"
)

type studentRow struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	FullName     string         `db:"full_name"`
	DOB          string         `db:"dob"`
	Address      string         `db:"address"`
	AddressProof []byte         `db:"address_proof"`
	ClassID      string         `db:"class_id"`
	Groups       pq.StringArray `db:"groups"`
	Subjects     pq.StringArray `db:"subjects"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r studentRow) toStudent() student.Student {
	return student.Student{
		ID:           r.ID,
		UserID:       r.UserID,
		FullName:     r.FullName,
		DOB:          r.DOB,
		Address:      r.Address,
		AddressProof: r.AddressProof,
		ClassID:      r.ClassID,
		Groups:       r.Groups,
		Subjects:     r.Subjects,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func newStudentRow(st student.Student) studentRow {
	return studentRow{
		ID:           st.ID,
		UserID:       st.UserID,
		FullName:     st.FullName,
		DOB:          st.DOB,
		Address:      st.Address,
		AddressProof: st.AddressProof,
		ClassID:      st.ClassID,
		Groups:       st.Groups,
		Subjects:     st.Subjects,
		CreatedAt:    st.CreatedAt,
		UpdatedAt:    st.UpdatedAt,
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	st.ID = uuid.New().String()
	const q = `
INSERT INTO student (id, user_id, full_name, dob, address, address_proof, class_id, groups, subjects, created_at, updated_at)
VALUES (:id, :user_id, :full_name, :dob, :address, :address_proof, :class_id, :groups, :subjects, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, newStudentRow(st)); err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return st, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM student`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	sts := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		sts = append(sts, row.toStudent())
	}
	return sts, nil
}

func (repo *studentRepository) getStudent(ctx context.Context, q string, args ...interface{}) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE id = $1`, id)
}

func (repo *studentRepository) GetStudentByUserID(ctx context.Context, userID string) (student.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE user_id = $1`, userID)
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	const q = `
UPDATE student
SET user_id       = :user_id,
    full_name     = :full_name,
    dob           = :dob,
    address       = :address,
    address_proof = :address_proof,
    class_id      = :class_id,
    groups        = :groups,
    subjects      = :subjects,
    updated_at    = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newStudentRow(st))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return st, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.ErrNotFound
	}
	return nil
}
