package group

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Group gathers students under a subject; Students maps a student's stored id
// to their full name as enrolled.
type Group struct {
	ID         string            `json:"id"`
	GroupID    string            `json:"group_id"`
	Tag        string            `json:"group_tag"`
	SubjectID  string            `json:"subject_id"`
	FacultyIDs []string          `json:"faculty_ids"`
	Students   map[string]string `json:"students"`
	CreatedAt  time.Time         `json:"created_at"` // UTC
	UpdatedAt  time.Time         `json:"updated_at"` // UTC
}

type NewGroup struct {
	GroupID    string            `json:"group_id" validate:"required"`
	Tag        string            `json:"group_tag"`
	SubjectID  string            `json:"subject_id" validate:"required"`
	FacultyIDs []string          `json:"faculty_ids"`
	Students   map[string]string `json:"students"`
}

func (ng *NewGroup) Validate(validate *validator.Validate) error {
	ng.GroupID = core.CleanString(ng.GroupID)
	ng.SubjectID = core.CleanString(ng.SubjectID)
	return validate.Struct(ng)
}

// EnrollStudents carries roster entries to merge into an existing Group.
type EnrollStudents struct {
	Students map[string]string `json:"students" validate:"required,min=1"`
}

func (es *EnrollStudents) Validate(validate *validator.Validate) error {
	return validate.Struct(es)
}
