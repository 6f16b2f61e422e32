package employee

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

var (
	ErrNotFound     = core.NewNotFoundError("employee not found")
	ErrUserNotFound = core.NewNotFoundError("user with the user ID does not exist")
	ErrUserExists   = core.NewConflictError("an employee with the same user ID already exists")
	ErrNotStaff     = core.NewValidationError(errors.New("user is not a member of staff"))
)

type (
	UserDirectory interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	Repository interface {
		CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
		QueryAllEmployees(ctx context.Context) ([]Employee, error)
		GetEmployeeByID(ctx context.Context, id string) (Employee, error)
		GetEmployeeByUserID(ctx context.Context, userID string) (Employee, error)
		// UpdateEmployee replaces the whole stored employee document.
		UpdateEmployee(ctx context.Context, emp Employee) (Employee, error)
		DeleteEmployee(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, ne NewEmployee) (Employee, error)
		QueryAll(ctx context.Context) ([]Employee, error)
		GetByID(ctx context.Context, id string) (Employee, error)
		Update(ctx context.Context, id string, ue UpdateEmployee) (Employee, error)
		Delete(ctx context.Context, id string) error
		// Exists reports whether an employee with the given id exists.
		Exists(ctx context.Context, id string) (bool, error)
	}

	service struct {
		repo  Repository
		users UserDirectory
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, users UserDirectory) Service {
	return &service{repo: repo, users: users}
}

func (svc *service) Create(ctx context.Context, ne NewEmployee) (Employee, error) {
	usr, err := svc.users.GetByID(ctx, ne.UserID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return Employee{}, ErrUserNotFound
		}
		return Employee{}, err
	}
	if !usr.IsTeacher() && !usr.IsAdmin() {
		return Employee{}, ErrNotStaff
	}

	if _, err := svc.repo.GetEmployeeByUserID(ctx, ne.UserID); err == nil {
		return Employee{}, ErrUserExists
	} else if errors.Cause(err) != ErrNotFound {
		return Employee{}, err
	}

	now := time.Now().UTC()
	emp := Employee{
		UserID:         ne.UserID,
		FullName:       ne.FullName,
		DOB:            ne.DOB,
		Address:        ne.Address,
		AddressProof:   ne.AddressProof,
		EmploymentType: ne.EmploymentType,
		Designation:    ne.Designation,
		Subjects:       ne.Subjects,
		Qualifications: ne.Qualifications,
		JoinedOn:       ne.JoinedOn,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateEmployee(ctx, emp)
}

func (svc *service) QueryAll(ctx context.Context) ([]Employee, error) {
	return svc.repo.QueryAllEmployees(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Employee, error) {
	return svc.repo.GetEmployeeByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, ue UpdateEmployee) (Employee, error) {
	emp, err := svc.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	emp.FullName = ue.FullName
	emp.DOB = ue.DOB
	emp.Address = ue.Address
	if ue.AddressProof != nil {
		emp.AddressProof = ue.AddressProof
	}
	emp.EmploymentType = ue.EmploymentType
	emp.Designation = ue.Designation
	emp.Subjects = ue.Subjects
	emp.Qualifications = ue.Qualifications
	emp.JoinedOn = ue.JoinedOn
	emp.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEmployee(ctx, emp)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteEmployee(ctx, id)
}

func (svc *service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := svc.repo.GetEmployeeByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
