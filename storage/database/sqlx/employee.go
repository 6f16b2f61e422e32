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

	"github.com/trezcool/darasa/core/employee"
)

type employeeRow struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	FullName       string         `db:"full_name"`
	DOB            string         `db:"dob"`
	Address        string         `db:"address"`
	AddressProof   []byte         `db:"address_proof"`
	EmploymentType string         `db:"employment_type"`
	Designation    string         `db:"designation"`
	Subjects       pq.StringArray `db:"subjects"`
	Qualifications []byte         `db:"qualifications"` // JSONB
	JoinedOn       string         `db:"joined_on"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r employeeRow) toEmployee() (employee.Employee, error) {
	emp := employee.Employee{
		ID:             r.ID,
		UserID:         r.UserID,
		FullName:       r.FullName,
		DOB:            r.DOB,
		Address:        r.Address,
		AddressProof:   r.AddressProof,
		EmploymentType: r.EmploymentType,
		Designation:    r.Designation,
		Subjects:       r.Subjects,
		JoinedOn:       r.JoinedOn,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if len(r.Qualifications) > 0 {
		if err := json.Unmarshal(r.Qualifications, &emp.Qualifications); err != nil {
			return employee.Employee{}, errors.Wrap(err, "decoding qualifications")
		}
	}
	return emp, nil
}

func newEmployeeRow(emp employee.Employee) (employeeRow, error) {
	qualifications, err := json.Marshal(emp.Qualifications)
	if err != nil {
		return employeeRow{}, errors.Wrap(err, "encoding qualifications")
	}
	return employeeRow{
		ID:             emp.ID,
		UserID:         emp.UserID,
		FullName:       emp.FullName,
		DOB:            emp.DOB,
		Address:        emp.Address,
		AddressProof:   emp.AddressProof,
		EmploymentType: emp.EmploymentType,
		Designation:    emp.Designation,
		Subjects:       emp.Subjects,
		Qualifications: qualifications,
		JoinedOn:       emp.JoinedOn,
		CreatedAt:      emp.CreatedAt,
		UpdatedAt:      emp.UpdatedAt,
	}, nil
}

type employeeRepository struct {
	db *sqlx.DB
}

var _ employee.Repository = (*employeeRepository)(nil)

func NewEmployeeRepository(db *sqlx.DB) employee.Repository {
	return &employeeRepository{db: db}
}

func (repo *employeeRepository) CreateEmployee(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = uuid.New().String()
	row, err := newEmployeeRow(emp)
	if err != nil {
		return employee.Employee{}, err
	}
	const q = `
INSERT INTO employee (id, user_id, full_name, dob, address, address_proof, employment_type, designation, subjects, qualifications, joined_on, created_at, updated_at)
VALUES (:id, :user_id, :full_name, :dob, :address, :address_proof, :employment_type, :designation, :subjects, :qualifications, :joined_on, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return employee.Employee{}, errors.Wrap(err, "creating employee")
	}
	return emp, nil
}

func (repo *employeeRepository) QueryAllEmployees(ctx context.Context) ([]employee.Employee, error) {
	var rows []employeeRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM employee`); err != nil {
		return nil, errors.Wrap(err, "querying employees")
	}
	emps := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		emp, err := row.toEmployee()
		if err != nil {
			return nil, err
		}
		emps = append(emps, emp)
	}
	return emps, nil
}

func (repo *employeeRepository) getEmployee(ctx context.Context, q string, args ...interface{}) (employee.Employee, error) {
	var row employeeRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, errors.Wrap(err, "getting employee")
	}
	return row.toEmployee()
}

func (repo *employeeRepository) GetEmployeeByID(ctx context.Context, id string) (employee.Employee, error) {
	return repo.getEmployee(ctx, `SELECT * FROM employee WHERE id = $1`, id)
}

func (repo *employeeRepository) GetEmployeeByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return repo.getEmployee(ctx, `SELECT * FROM employee WHERE user_id = $1`, userID)
}

func (repo *employeeRepository) UpdateEmployee(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	row, err := newEmployeeRow(emp)
	if err != nil {
		return employee.Employee{}, err
	}
	const q = `
UPDATE employee
SET user_id         = :user_id,
    full_name       = :full_name,
    dob             = :dob,
    address         = :address,
    address_proof   = :address_proof,
    employment_type = :employment_type,
    designation     = :designation,
    subjects        = :subjects,
    qualifications  = :qualifications,
    joined_on       = :joined_on,
    updated_at      = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return employee.Employee{}, errors.Wrap(err, "updating employee")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return employee.Employee{}, employee.ErrNotFound
	}
	return emp, nil
}

func (repo *employeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM employee WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting employee")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return employee.ErrNotFound
	}
	return nil
}
