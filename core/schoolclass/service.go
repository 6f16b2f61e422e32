package schoolclass

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = core.NewNotFoundError("class not found")

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		// UpdateClass replaces the whole stored class document.
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		DeleteClass(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nc NewClass) (Class, error)
		QueryAll(ctx context.Context) ([]Class, error)
		GetByID(ctx context.Context, id string) (Class, error)
		Update(ctx context.Context, id string, nc NewClass) (Class, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		ClassTag:         nc.ClassTag,
		Strength:         nc.Strength,
		Supervisor:       nc.Supervisor,
		YearOrSem:        nc.YearOrSem,
		CustomAttributes: nc.CustomAttributes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, nc NewClass) (Class, error) {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return Class{}, err
	}

	cls.ClassTag = nc.ClassTag
	cls.Strength = nc.Strength
	cls.Supervisor = nc.Supervisor
	cls.YearOrSem = nc.YearOrSem
	cls.CustomAttributes = nc.CustomAttributes
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClass(ctx, id)
}
