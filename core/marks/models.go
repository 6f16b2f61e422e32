package marks

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Record statuses, derived at read time: a record is complete once it holds a
// score for every assessment component of its subject, draft otherwise.
const (
	StatusDraft    = "draft"
	StatusComplete = "complete"
)

// ComponentScore pairs an assessment component (by its stored id) with the raw
// score a student obtained on it.
type ComponentScore struct {
	ComponentID string  `json:"component_id" validate:"required"`
	Score       float64 `json:"score" validate:"min=0"`
}

// Record holds a student's scores for one subject. Total is derived from
// Components and the assessment registry; it is never set directly.
type Record struct {
	ID         string           `json:"id"`
	StudentID  string           `json:"student_id"`
	SubjectID  string           `json:"subject_id"`
	Components []ComponentScore `json:"components"`
	Total      float64          `json:"total"`
	Status     string           `json:"status,omitempty"` // derived, not stored
	CreatedAt  time.Time        `json:"created_at"`       // UTC
	UpdatedAt  time.Time        `json:"updated_at"`       // UTC
}

// HasComponent reports whether a score for the given component is already recorded.
func (r *Record) HasComponent(componentID string) bool {
	for _, cs := range r.Components {
		if cs.ComponentID == componentID {
			return true
		}
	}
	return false
}

// NewRecord contains information needed to create or replace a Record.
type NewRecord struct {
	StudentID  string           `json:"student_id" validate:"required"`
	SubjectID  string           `json:"subject_id" validate:"required"`
	Components []ComponentScore `json:"components" validate:"omitempty,dive"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.SubjectID = core.CleanString(nr.SubjectID)
	return validate.Struct(nr)
}

// AmendScores carries scores to merge into an existing Record.
type AmendScores struct {
	Components []ComponentScore `json:"components" validate:"required,min=1,dive"`
}

func (as *AmendScores) Validate(validate *validator.Validate) error {
	return validate.Struct(as)
}
