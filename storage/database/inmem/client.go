package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/client"
)

type clientRepository struct {
	db *clientTable
}

var _ client.Repository = (*clientRepository)(nil)

func NewClientRepository(db *DB) client.Repository {
	return &clientRepository{db: db.client}
}

func (repo *clientRepository) CreateClient(ctx context.Context, cl client.Client) (client.Client, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cl.ID = uuid.New().String()
	repo.db.table[cl.ID] = &cl
	return cl, nil
}

func (repo *clientRepository) QueryAllClients(ctx context.Context) ([]client.Client, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	clients := make([]client.Client, 0, len(repo.db.table))
	for _, cl := range repo.db.table {
		clients = append(clients, *cl)
	}
	return clients, nil
}

func (repo *clientRepository) GetClientByID(ctx context.Context, id string) (client.Client, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cl, ok := repo.db.table[id]; ok {
		return *cl, nil
	}
	return client.Client{}, client.ErrNotFound
}

func (repo *clientRepository) UpdateClient(ctx context.Context, cl client.Client) (client.Client, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cl.ID]; !ok {
		return client.Client{}, client.ErrNotFound
	}
	repo.db.table[cl.ID] = &cl
	return cl, nil
}

func (repo *clientRepository) DeleteClient(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return client.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
