package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/assessment"
)

type assessmentApi struct {
	svc      assessment.Service
	validate *validator.Validate
}

func registerAssessmentAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc assessment.Service, validate *validator.Validate) {
	api := assessmentApi{svc: svc, validate: validate}

	ag := g.Group("/assessments", auth...)
	ag.POST("", api.assessmentCreate, staffMiddleware())
	ag.GET("", api.assessmentQuery)
	ag.GET("/:id", api.assessmentRetrieve)
	ag.GET("/subject/:subjectID", api.assessmentQueryBySubject)
	ag.PUT("/:id", api.assessmentUpdate, staffMiddleware())
	ag.DELETE("/:id", api.assessmentDestroy, staffMiddleware())
}

func (api *assessmentApi) assessmentCreate(ctx echo.Context) error {
	data := new(assessment.NewComponent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	comp, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, comp)
}

func (api *assessmentApi) assessmentQuery(ctx echo.Context) error {
	filter := new(assessment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return err
	}

	comps, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comps)
}

func (api *assessmentApi) assessmentRetrieve(ctx echo.Context) error {
	comp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comp)
}

// assessmentQueryBySubject lists a subject's components together with the
// contribution already allotted, so callers can see the remaining headroom.
func (api *assessmentApi) assessmentQueryBySubject(ctx echo.Context) error {
	comps, total, err := api.svc.QueryBySubject(ctx.Request().Context(), ctx.Param("subjectID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SubjectAssessmentsResponse{
		Components:        comps,
		ContributionTotal: total,
	})
}

func (api *assessmentApi) assessmentUpdate(ctx echo.Context) error {
	data := new(assessment.NewComponent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	comp, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comp)
}

func (api *assessmentApi) assessmentDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type SubjectAssessmentsResponse struct {
	Components        []assessment.Component `json:"components"`
	ContributionTotal float64                `json:"contribution_total"`
}
