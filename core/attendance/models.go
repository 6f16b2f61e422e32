package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Record is one student's attendance for one hour slot.
type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Date      string    `json:"date"`
	Timestamp string    `json:"timestamp"`
	MarkedBy  string    `json:"marked_by"`
	Hour      string    `json:"hours"`
	GroupID   string    `json:"group_id"`
	Kind      string    `json:"type_of_attendance"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewRecord struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Timestamp string `json:"timestamp"`
	MarkedBy  string `json:"marked_by" validate:"required"`
	Hour      string `json:"hours" validate:"required"`
	GroupID   string `json:"group_id" validate:"required"`
	Kind      string `json:"type_of_attendance"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.GroupID = core.CleanString(nr.GroupID)
	return validate.Struct(nr)
}

// BulkMarking marks several students over several hour slots in one call.
// StudentIDs maps a student's stored id to their attendance type for the day.
type BulkMarking struct {
	StudentIDs map[string]string `json:"student_ids" validate:"required,min=1"`
	Date       string            `json:"date" validate:"required"`
	Timestamp  string            `json:"timestamp"`
	Hours      []string          `json:"hours" validate:"required,min=1"`
	GroupID    string            `json:"group_id" validate:"required"`
}

func (bm *BulkMarking) Validate(validate *validator.Validate) error {
	bm.GroupID = core.CleanString(bm.GroupID)
	return validate.Struct(bm)
}

// QueryFilter narrows attendance lookups; zero-valued fields are ignored.
type QueryFilter struct {
	StudentID string `json:"student_id" query:"student_id"`
	GroupID   string `json:"group_id" query:"group_id"`
	MarkedBy  string `json:"marked_by" query:"marked_by"`
	Date      string `json:"date" query:"date"`
}

func (f QueryFilter) IsEmpty() bool {
	return f == QueryFilter{}
}
