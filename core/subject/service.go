package subject

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	ErrNotFound = core.NewNotFoundError("subject not found")
	ErrExists   = core.NewConflictError("subject with the same ID already exists")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		GetSubjectByID(ctx context.Context, id string) (Subject, error)
		GetSubjectBySubjectID(ctx context.Context, subjectID string) (Subject, error)
		UpdateSubject(ctx context.Context, sub Subject) (Subject, error)
		DeleteSubject(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, ns NewSubject) (Subject, error)
		QueryAll(ctx context.Context) ([]Subject, error)
		GetByID(ctx context.Context, id string) (Subject, error)
		Update(ctx context.Context, id string, ns NewSubject) (Subject, error)
		Delete(ctx context.Context, id string) error
		// Exists reports whether a subject with the given school-facing code exists.
		Exists(ctx context.Context, subjectID string) (bool, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	if _, err := svc.repo.GetSubjectBySubjectID(ctx, ns.SubjectID); err == nil {
		return Subject{}, ErrExists
	} else if errors.Cause(err) != ErrNotFound {
		return Subject{}, err
	}

	now := time.Now().UTC()
	sub := Subject{
		SubjectID:   ns.SubjectID,
		Name:        ns.Name,
		Description: ns.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *service) QueryAll(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAllSubjects(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, ns NewSubject) (Subject, error) {
	sub, err := svc.repo.GetSubjectByID(ctx, id)
	if err != nil {
		return Subject{}, err
	}

	// the subject code may move to this subject only if no other subject holds it
	if other, err := svc.repo.GetSubjectBySubjectID(ctx, ns.SubjectID); err == nil {
		if other.ID != sub.ID {
			return Subject{}, ErrExists
		}
	} else if errors.Cause(err) != ErrNotFound {
		return Subject{}, err
	}

	sub.SubjectID = ns.SubjectID
	sub.Name = ns.Name
	sub.Description = ns.Description
	sub.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubject(ctx, sub)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSubject(ctx, id)
}

func (svc *service) Exists(ctx context.Context, subjectID string) (bool, error) {
	if _, err := svc.repo.GetSubjectBySubjectID(ctx, subjectID); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
