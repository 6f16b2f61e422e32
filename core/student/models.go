package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Student struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	DOB          string    `json:"dob"`
	Address      string    `json:"address"`
	AddressProof []byte    `json:"address_proof,omitempty"`
	ClassID      string    `json:"current_class_id"`
	Groups       []string  `json:"groups"`
	Subjects     []string  `json:"subjects"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

type NewStudent struct {
	UserID       string   `json:"user_id" validate:"required"`
	FullName     string   `json:"full_name" validate:"required"`
	DOB          string   `json:"dob"`
	Address      string   `json:"address"`
	AddressProof []byte   `json:"address_proof"`
	ClassID      string   `json:"current_class_id"`
	Groups       []string `json:"groups"`
	Subjects     []string `json:"subjects"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.UserID = core.CleanString(ns.UserID)
	ns.FullName = core.CleanString(ns.FullName)
	return validate.Struct(ns)
}
