package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core/fleet"
)

type fleetAPI struct {
	svc *fleet.Service
}

func registerFleetAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *fleet.Service) {
	api := fleetAPI{svc: svc}

	vg := g.Group("/fleet/:vehicle", jwt, roleMiddleware(RoleFleet))
	vg.GET("", api.session)
	vg.POST("/events", api.record)
	vg.GET("/report", api.report)
	vg.GET("/costs", api.costs)
	vg.GET("/plan", api.plan)
}

// Handlers

func (api *fleetAPI) session(ctx echo.Context) error {
	state, err := api.svc.Session(ctx.Request().Context(), ctx.Param("vehicle"))
	if err != nil {
		return errors.Wrap(err, "getting log book")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *fleetAPI) record(ctx echo.Context) error {
	var data fleet.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}

	rec, err := api.svc.Record(ctx.Request().Context(), ctx.Param("vehicle"), data)
	if err != nil {
		return errors.Wrap(err, "recording event")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *fleetAPI) report(ctx echo.Context) error {
	report, err := api.svc.Report(ctx.Request().Context(), ctx.Param("vehicle"))
	if err != nil {
		return errors.Wrap(err, "building report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *fleetAPI) costs(ctx echo.Context) error {
	costs, err := api.svc.Costs(ctx.Request().Context(), ctx.Param("vehicle"))
	if err != nil {
		return errors.Wrap(err, "totalling costs")
	}
	return ctx.JSON(http.StatusOK, costs)
}

func (api *fleetAPI) plan(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Planner().Plan())
}
