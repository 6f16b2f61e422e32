package schoolclass

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Class struct {
	ID               string                   `json:"id"`
	ClassTag         string                   `json:"class_tag"`
	Strength         int                      `json:"class_strength"`
	Supervisor       string                   `json:"class_supervisor"`
	YearOrSem        string                   `json:"year_or_sem"`
	CustomAttributes []map[string]interface{} `json:"custom_attributes"`
	CreatedAt        time.Time                `json:"created_at"` // UTC
	UpdatedAt        time.Time                `json:"updated_at"` // UTC
}

type NewClass struct {
	ClassTag         string                   `json:"class_tag" validate:"required"`
	Strength         int                      `json:"class_strength" validate:"min=0"`
	Supervisor       string                   `json:"class_supervisor"`
	YearOrSem        string                   `json:"year_or_sem"`
	CustomAttributes []map[string]interface{} `json:"custom_attributes"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.ClassTag = core.CleanString(nc.ClassTag)
	return validate.Struct(nc)
}
