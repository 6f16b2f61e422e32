package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/client"
)

type clientApi struct {
	svc      client.Service
	validate *validator.Validate
}

func registerClientAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc client.Service, validate *validator.Validate) {
	api := clientApi{svc: svc, validate: validate}

	cg := g.Group("/clients", auth...)
	cg.POST("", api.clientCreate, adminMiddleware())
	cg.GET("", api.clientQuery, adminMiddleware())
	cg.GET("/:id", api.clientRetrieve, adminMiddleware())
	cg.PUT("/:id", api.clientUpdate, adminMiddleware())
	cg.DELETE("/:id", api.clientDestroy, adminMiddleware())
}

func (api *clientApi) clientCreate(ctx echo.Context) error {
	data := new(client.NewClient)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cl, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cl)
}

func (api *clientApi) clientQuery(ctx echo.Context) error {
	clients, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, clients)
}

func (api *clientApi) clientRetrieve(ctx echo.Context) error {
	cl, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cl)
}

func (api *clientApi) clientUpdate(ctx echo.Context) error {
	data := new(client.NewClient)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cl, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cl)
}

func (api *clientApi) clientDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
