package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

var (
	ErrNotFound      = core.NewNotFoundError("student not found")
	ErrUserNotFound  = core.NewNotFoundError("user with the user ID does not exist")
	ErrUserExists    = core.NewConflictError("a student with the same user ID already exists")
	ErrGroupNotFound = core.NewNotFoundError("one or more groups do not exist")
	ErrNotAStudent   = core.NewValidationError(errors.New("user is not a student"))
)

type (
	// UserDirectory resolves user accounts; owned by the user module.
	UserDirectory interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	// GroupLookup reports group existence by the school-facing group code.
	GroupLookup interface {
		Exists(ctx context.Context, groupID string) (bool, error)
	}

	Repository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByUserID(ctx context.Context, userID string) (Student, error)
		// UpdateStudent replaces the whole stored student document.
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, ns NewStudent) (Student, error)
		QueryAll(ctx context.Context) ([]Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		Update(ctx context.Context, id string, ns NewStudent) (Student, error)
		Delete(ctx context.Context, id string) error
		// Exists reports whether a student with the given id exists.
		Exists(ctx context.Context, id string) (bool, error)
	}

	service struct {
		repo   Repository
		users  UserDirectory
		groups GroupLookup
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, users UserDirectory, groups GroupLookup) Service {
	return &service{repo: repo, users: users, groups: groups}
}

func (svc *service) checkUserAndGroups(ctx context.Context, ns NewStudent) error {
	usr, err := svc.users.GetByID(ctx, ns.UserID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return ErrUserNotFound
		}
		return err
	}
	if !usr.IsStudent() {
		return ErrNotAStudent
	}

	for _, groupID := range ns.Groups {
		exists, err := svc.groups.Exists(ctx, groupID)
		if err != nil {
			return errors.Wrap(err, "checking group existence")
		}
		if !exists {
			return ErrGroupNotFound
		}
	}
	return nil
}

func (svc *service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := svc.checkUserAndGroups(ctx, ns); err != nil {
		return Student{}, err
	}

	if _, err := svc.repo.GetStudentByUserID(ctx, ns.UserID); err == nil {
		return Student{}, ErrUserExists
	} else if errors.Cause(err) != ErrNotFound {
		return Student{}, err
	}

	now := time.Now().UTC()
	st := Student{
		UserID:       ns.UserID,
		FullName:     ns.FullName,
		DOB:          ns.DOB,
		Address:      ns.Address,
		AddressProof: ns.AddressProof,
		ClassID:      ns.ClassID,
		Groups:       ns.Groups,
		Subjects:     ns.Subjects,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, ns NewStudent) (Student, error) {
	st, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}

	if err := svc.checkUserAndGroups(ctx, ns); err != nil {
		return Student{}, err
	}
	if ns.UserID != st.UserID {
		if other, err := svc.repo.GetStudentByUserID(ctx, ns.UserID); err == nil {
			if other.ID != st.ID {
				return Student{}, ErrUserExists
			}
		} else if errors.Cause(err) != ErrNotFound {
			return Student{}, err
		}
	}

	st.UserID = ns.UserID
	st.FullName = ns.FullName
	st.DOB = ns.DOB
	st.Address = ns.Address
	if ns.AddressProof != nil {
		st.AddressProof = ns.AddressProof
	}
	st.ClassID = ns.ClassID
	st.Groups = ns.Groups
	st.Subjects = ns.Subjects
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, st)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStudent(ctx, id)
}

func (svc *service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := svc.repo.GetStudentByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
