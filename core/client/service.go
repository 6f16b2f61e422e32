package client

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = core.NewNotFoundError("client not found")

type (
	Repository interface {
		CreateClient(ctx context.Context, cl Client) (Client, error)
		QueryAllClients(ctx context.Context) ([]Client, error)
		GetClientByID(ctx context.Context, id string) (Client, error)
		// UpdateClient replaces the whole stored client document.
		UpdateClient(ctx context.Context, cl Client) (Client, error)
		DeleteClient(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nc NewClient) (Client, error)
		QueryAll(ctx context.Context) ([]Client, error)
		GetByID(ctx context.Context, id string) (Client, error)
		Update(ctx context.Context, id string, nc NewClient) (Client, error)
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

func (svc *service) Create(ctx context.Context, nc NewClient) (Client, error) {
	now := time.Now().UTC()
	cl := Client{
		Name:        nc.Name,
		Address:     nc.Address,
		PricingTier: nc.PricingTier,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateClient(ctx, cl)
}

func (svc *service) QueryAll(ctx context.Context) ([]Client, error) {
	return svc.repo.QueryAllClients(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Client, error) {
	return svc.repo.GetClientByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, nc NewClient) (Client, error) {
	cl, err := svc.repo.GetClientByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	cl.Name = nc.Name
	cl.Address = nc.Address
	cl.PricingTier = nc.PricingTier
	cl.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClient(ctx, cl)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClient(ctx, id)
}
