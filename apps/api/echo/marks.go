package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/marks"
)

type marksApi struct {
	svc      marks.Service
	validate *validator.Validate
}

func registerMarksAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc marks.Service, validate *validator.Validate) {
	api := marksApi{svc: svc, validate: validate}

	mg := g.Group("/marks", auth...)
	mg.POST("", api.marksCreate, staffMiddleware())
	mg.GET("", api.marksQuery, staffMiddleware())
	mg.GET("/:id", api.marksRetrieve)
	mg.GET("/student/:studentID", api.marksQueryByStudent)
	mg.GET("/subject/:subjectID", api.marksQueryBySubject, staffMiddleware())
	mg.PUT("/:id", api.marksReplace, staffMiddleware())
	mg.PATCH("/:id/scores", api.marksAmend, staffMiddleware())
	mg.DELETE("/:id", api.marksDestroy, adminMiddleware())
}

func (api *marksApi) marksCreate(ctx echo.Context) error {
	data := new(marks.NewRecord)
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

func (api *marksApi) marksQuery(ctx echo.Context) error {
	recs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *marksApi) marksRetrieve(ctx echo.Context) error {
	rec, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *marksApi) marksQueryByStudent(ctx echo.Context) error {
	recs, err := api.svc.QueryByStudent(ctx.Request().Context(), ctx.Param("studentID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *marksApi) marksQueryBySubject(ctx echo.Context) error {
	recs, err := api.svc.QueryBySubject(ctx.Request().Context(), ctx.Param("subjectID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs)
}

// marksReplace swaps the record's whole component-score set and recomputes
// the weighted total.
func (api *marksApi) marksReplace(ctx echo.Context) error {
	data := new(marks.NewRecord)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Replace(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

// marksAmend appends scores for components not yet on the record; components
// already scored keep their existing entry.
func (api *marksApi) marksAmend(ctx echo.Context) error {
	data := new(marks.AmendScores)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Amend(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *marksApi) marksDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
