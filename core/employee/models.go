package employee

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Employee struct {
	ID             string                   `json:"id"`
	UserID         string                   `json:"user_id"`
	FullName       string                   `json:"full_name"`
	DOB            string                   `json:"dob"`
	Address        string                   `json:"address"`
	AddressProof   []byte                   `json:"address_proof,omitempty"`
	EmploymentType string                   `json:"type_of_employment"`
	Designation    string                   `json:"designation"`
	Subjects       []string                 `json:"subjects"`
	Qualifications []map[string]interface{} `json:"qualification_details"`
	JoinedOn       string                   `json:"date_of_joining_org"`
	CreatedAt      time.Time                `json:"created_at"` // UTC
	UpdatedAt      time.Time                `json:"updated_at"` // UTC
}

type NewEmployee struct {
	UserID         string                   `json:"user_id" validate:"required"`
	FullName       string                   `json:"full_name" validate:"required"`
	DOB            string                   `json:"dob"`
	Address        string                   `json:"address"`
	AddressProof   []byte                   `json:"address_proof"`
	EmploymentType string                   `json:"type_of_employment"`
	Designation    string                   `json:"designation"`
	Subjects       []string                 `json:"subjects"`
	Qualifications []map[string]interface{} `json:"qualification_details"`
	JoinedOn       string                   `json:"date_of_joining_org"`
}

func (ne *NewEmployee) Validate(validate *validator.Validate) error {
	ne.UserID = core.CleanString(ne.UserID)
	ne.FullName = core.CleanString(ne.FullName)
	return validate.Struct(ne)
}

// UpdateEmployee carries a profile replacement; the linked user account
// cannot be swapped after creation.
type UpdateEmployee struct {
	FullName       string                   `json:"full_name" validate:"required"`
	DOB            string                   `json:"dob"`
	Address        string                   `json:"address"`
	AddressProof   []byte                   `json:"address_proof"`
	EmploymentType string                   `json:"type_of_employment"`
	Designation    string                   `json:"designation"`
	Subjects       []string                 `json:"subjects"`
	Qualifications []map[string]interface{} `json:"qualification_details"`
	JoinedOn       string                   `json:"date_of_joining_org"`
}

func (ue *UpdateEmployee) Validate(validate *validator.Validate) error {
	ue.FullName = core.CleanString(ue.FullName)
	return validate.Struct(ue)
}
