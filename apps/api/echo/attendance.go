package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
)

type attendanceApi struct {
	svc      attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance", auth...)
	ag.POST("", api.attendanceCreate, staffMiddleware())
	ag.POST("/bulk", api.attendanceCreateBulk, staffMiddleware())
	ag.GET("", api.attendanceQuery, staffMiddleware())
	ag.GET("/:id", api.attendanceRetrieve, staffMiddleware())
	ag.PUT("/:id", api.attendanceUpdate, staffMiddleware())
	ag.DELETE("/:id", api.attendanceDestroy, adminMiddleware())
}

func (api *attendanceApi) attendanceCreate(ctx echo.Context) error {
	data := new(attendance.NewRecord)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rec)
}

// attendanceCreateBulk validates the whole batch first; no record is written
// unless every (student, date, hour) slot in the marking is free.
func (api *attendanceApi) attendanceCreateBulk(ctx echo.Context) error {
	data := new(BulkMarkingRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	recs, err := api.svc.CreateBulk(ctx.Request().Context(), data.MarkedBy, data.BulkMarking)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, recs)
}

func (api *attendanceApi) attendanceQuery(ctx echo.Context) error {
	filter := new(attendance.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return err
	}

	recs, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *attendanceApi) attendanceRetrieve(ctx echo.Context) error {
	rec, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) attendanceUpdate(ctx echo.Context) error {
	data := new(attendance.NewRecord)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) attendanceDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// BulkMarkingRequest carries a marking plus the employee doing the marking.
type BulkMarkingRequest struct {
	attendance.BulkMarking
	MarkedBy string `json:"marked_by" validate:"required"`
}

func (br *BulkMarkingRequest) Validate(validate *validator.Validate) error {
	br.MarkedBy = core.CleanString(br.MarkedBy)
	if br.MarkedBy == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "marked_by", Error: "this field is required"})
	}
	return br.BulkMarking.Validate(validate)
}
