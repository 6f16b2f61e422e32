package client

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

const defaultPricingTier = "premium"

type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PricingTier string    `json:"pricing_tier"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type NewClient struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	PricingTier string `json:"pricing_tier"`
}

func (nc *NewClient) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.PricingTier = core.CleanString(nc.PricingTier, true)
	if nc.PricingTier == "" {
		nc.PricingTier = defaultPricingTier
	}
	return validate.Struct(nc)
}
