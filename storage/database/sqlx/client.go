package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/client"
)

type clientRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	PricingTier string    `db:"pricing_tier"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type clientRepository struct {
	db *sqlx.DB
}

var _ client.Repository = (*clientRepository)(nil)

func NewClientRepository(db *sqlx.DB) client.Repository {
	return &clientRepository{db: db}
}

func (repo *clientRepository) CreateClient(ctx context.Context, cl client.Client) (client.Client, error) {
	cl.ID = uuid.New().String()
	const q = `
INSERT INTO client (id, name, address, pricing_tier, created_at, updated_at)
VALUES (:id, :name, :address, :pricing_tier, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, clientRow(cl)); err != nil {
		return client.Client{}, errors.Wrap(err, "creating client")
	}
	return cl, nil
}

func (repo *clientRepository) QueryAllClients(ctx context.Context) ([]client.Client, error) {
	var rows []clientRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM client`); err != nil {
		return nil, errors.Wrap(err, "querying clients")
	}
	clients := make([]client.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, client.Client(row))
	}
	return clients, nil
}

func (repo *clientRepository) GetClientByID(ctx context.Context, id string) (client.Client, error) {
	var row clientRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM client WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, errors.Wrap(err, "getting client")
	}
	return client.Client(row), nil
}

func (repo *clientRepository) UpdateClient(ctx context.Context, cl client.Client) (client.Client, error) {
	const q = `
UPDATE client
SET name         = :name,
    address      = :address,
    pricing_tier = :pricing_tier,
    updated_at   = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, clientRow(cl))
	if err != nil {
		return client.Client{}, errors.Wrap(err, "updating client")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return client.Client{}, client.ErrNotFound
	}
	return cl, nil
}

func (repo *clientRepository) DeleteClient(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM client WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting client")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return client.ErrNotFound
	}
	return nil
}
