package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
)

type attendanceRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Date      string    `db:"date"`
	Timestamp string    `db:"timestamp"`
	MarkedBy  string    `db:"marked_by"`
	Hour      string    `db:"hour"`
	GroupID   string    `db:"group_id"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r attendanceRow) toRecord() attendance.Record {
	return attendance.Record(r)
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) CreateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	rec.ID = uuid.New().String()
	const q = `
INSERT INTO attendance (id, student_id, date, timestamp, marked_by, hour, group_id, kind, created_at, updated_at)
VALUES (:id, :student_id, :date, :timestamp, :marked_by, :hour, :group_id, :kind, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, attendanceRow(rec)); err != nil {
		return attendance.Record{}, errors.Wrap(err, "creating attendance")
	}
	return rec, nil
}

func (repo *attendanceRepository) selectRecords(ctx context.Context, q string, args ...interface{}) ([]attendance.Record, error) {
	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	recs := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.toRecord())
	}
	return recs, nil
}

func (repo *attendanceRepository) QueryAllRecords(ctx context.Context) ([]attendance.Record, error) {
	return repo.selectRecords(ctx, `SELECT * FROM attendance`)
}

func (repo *attendanceRepository) getRecord(ctx context.Context, q string, args ...interface{}) (attendance.Record, error) {
	var row attendanceRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return attendance.Record{}, attendance.ErrNotFound
		}
		return attendance.Record{}, errors.Wrap(err, "getting attendance")
	}
	return row.toRecord(), nil
}

func (repo *attendanceRepository) GetRecordByID(ctx context.Context, id string) (attendance.Record, error) {
	return repo.getRecord(ctx, `SELECT * FROM attendance WHERE id = $1`, id)
}

func (repo *attendanceRepository) GetRecordBySlot(ctx context.Context, studentID, date, hour string) (attendance.Record, error) {
	return repo.getRecord(ctx, `SELECT * FROM attendance WHERE student_id = $1 AND date = $2 AND hour = $3`, studentID, date, hour)
}

func (repo *attendanceRepository) FilterRecords(ctx context.Context, filter attendance.QueryFilter) ([]attendance.Record, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + itoa(len(args))
	}

	if filter.StudentID != "" {
		conds = append(conds, "student_id = "+arg(filter.StudentID))
	}
	if filter.GroupID != "" {
		conds = append(conds, "group_id = "+arg(filter.GroupID))
	}
	if filter.MarkedBy != "" {
		conds = append(conds, "marked_by = "+arg(filter.MarkedBy))
	}
	if filter.Date != "" {
		conds = append(conds, "date = "+arg(filter.Date))
	}

	q := `SELECT * FROM attendance`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	return repo.selectRecords(ctx, q, args...)
}

func (repo *attendanceRepository) UpdateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	const q = `
UPDATE attendance
SET student_id = :student_id,
    date       = :date,
    timestamp  = :timestamp,
    hour       = :hour,
    group_id   = :group_id,
    kind       = :kind,
    updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, attendanceRow(rec))
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "updating attendance")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return rec, nil
}

func (repo *attendanceRepository) DeleteRecord(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.ErrNotFound
	}
	return nil
}
