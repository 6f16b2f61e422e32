package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/schoolclass"
)

type classApi struct {
	svc      schoolclass.Service
	validate *validator.Validate
}

func registerClassAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc schoolclass.Service, validate *validator.Validate) {
	api := classApi{svc: svc, validate: validate}

	cg := g.Group("/classes", auth...)
	cg.POST("", api.classCreate, staffMiddleware())
	cg.GET("", api.classQuery)
	cg.GET("/:id", api.classRetrieve)
	cg.PUT("/:id", api.classUpdate, staffMiddleware())
	cg.DELETE("/:id", api.classDestroy, adminMiddleware())
}

func (api *classApi) classCreate(ctx echo.Context) error {
	data := new(schoolclass.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) classQuery(ctx echo.Context) error {
	classes, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) classRetrieve(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) classUpdate(ctx echo.Context) error {
	data := new(schoolclass.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) classDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
