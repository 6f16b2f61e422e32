package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/employee"
)

type employeeRepository struct {
	db *employeeTable
}

var _ employee.Repository = (*employeeRepository)(nil)

func NewEmployeeRepository(db *DB) employee.Repository {
	return &employeeRepository{db: db.employee}
}

func (repo *employeeRepository) CreateEmployee(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	emp.ID = uuid.New().String()
	repo.db.table[emp.ID] = &emp
	return emp, nil
}

func (repo *employeeRepository) QueryAllEmployees(ctx context.Context) ([]employee.Employee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	emps := make([]employee.Employee, 0, len(repo.db.table))
	for _, emp := range repo.db.table {
		emps = append(emps, *emp)
	}
	return emps, nil
}

func (repo *employeeRepository) GetEmployeeByID(ctx context.Context, id string) (employee.Employee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if emp, ok := repo.db.table[id]; ok {
		return *emp, nil
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (repo *employeeRepository) GetEmployeeByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, emp := range repo.db.table {
		if emp.UserID == userID {
			return *emp, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (repo *employeeRepository) UpdateEmployee(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[emp.ID]; !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	repo.db.table[emp.ID] = &emp
	return emp, nil
}

func (repo *employeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return employee.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
