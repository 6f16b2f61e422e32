package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/employee"
)

type employeeApi struct {
	svc      employee.Service
	validate *validator.Validate
}

func registerEmployeeAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc employee.Service, validate *validator.Validate) {
	api := employeeApi{svc: svc, validate: validate}

	eg := g.Group("/employees", auth...)
	eg.POST("", api.employeeCreate, adminMiddleware())
	eg.GET("", api.employeeQuery, staffMiddleware())
	eg.GET("/:id", api.employeeRetrieve, staffMiddleware())
	eg.PUT("/:id", api.employeeUpdate, adminMiddleware())
	eg.DELETE("/:id", api.employeeDestroy, adminMiddleware())
}

func (api *employeeApi) employeeCreate(ctx echo.Context) error {
	data := new(employee.NewEmployee)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	emp, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, emp)
}

func (api *employeeApi) employeeQuery(ctx echo.Context) error {
	employees, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, employees)
}

func (api *employeeApi) employeeRetrieve(ctx echo.Context) error {
	emp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *employeeApi) employeeUpdate(ctx echo.Context) error {
	data := new(employee.UpdateEmployee)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	emp, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *employeeApi) employeeDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
