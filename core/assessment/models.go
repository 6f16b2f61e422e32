package assessment

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// Percent is a contribution weight in [0, 100].
// Legacy clients send it either as a JSON number or as a string; it is parsed
// once here at the boundary so arithmetic never sees text.
type Percent float64

func (p *Percent) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return core.NewValidationError(
			errors.New("invalid contribution"),
			core.FieldError{Field: "contribution", Error: "must be a number between 0 and 100"},
		)
	}
	*p = Percent(f)
	return nil
}

// Component is a graded piece of a subject's final mark (eg. a midterm, a quiz,
// a lab). Identified by (ComponentID, SubjectID); Contribution is its weight
// towards the subject's final grade.
type Component struct {
	ID            string    `json:"id"`
	ComponentID   string    `json:"component_id"`
	SubjectID     string    `json:"subject_id"`
	Kind          string    `json:"kind"`
	OccursOn      string    `json:"occurs_on"`
	Tag           string    `json:"tag"`
	MaxScore      float64   `json:"max_score"`
	MandatoryPass bool      `json:"mandatory_pass"`
	Contribution  Percent   `json:"contribution"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// NewComponent contains information needed to create or replace a Component.
type NewComponent struct {
	ComponentID   string  `json:"component_id" validate:"required"`
	SubjectID     string  `json:"subject_id" validate:"required"`
	Kind          string  `json:"kind" validate:"required"`
	OccursOn      string  `json:"occurs_on"`
	Tag           string  `json:"tag"`
	MaxScore      float64 `json:"max_score" validate:"required,gt=0"`
	MandatoryPass bool    `json:"mandatory_pass"`
	Contribution  Percent `json:"contribution" validate:"min=0,max=100"`
}

func (nc *NewComponent) Validate(validate *validator.Validate) error {
	nc.ComponentID = core.CleanString(nc.ComponentID)
	nc.SubjectID = core.CleanString(nc.SubjectID)
	nc.Kind = core.CleanString(nc.Kind)
	nc.Tag = core.CleanString(nc.Tag)
	return validate.Struct(nc)
}

// QueryFilter narrows component listings; zero fields are ignored.
type QueryFilter struct {
	SubjectID   string `query:"subject_id"`
	ComponentID string `query:"component_id"`
	Kind        string `query:"kind"`
	Tag         string `query:"tag"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.SubjectID == "" && qf.ComponentID == "" && qf.Kind == "" && qf.Tag == ""
}

// ContributionSum adds up the contribution of the given components.
func ContributionSum(components []Component) float64 {
	var sum float64
	for _, comp := range components {
		sum += float64(comp.Contribution)
	}
	return sum
}
