package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
	"github.com/trezcool/opsdesk/core/review"
)

type queueAPI struct {
	svc      *review.Service
	validate *validator.Validate
}

func registerQueueAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *review.Service, validate *validator.Validate) {
	api := queueAPI{
		svc:      svc,
		validate: validate,
	}

	qg := g.Group("/queues", jwt)
	qg.GET("", api.list)

	// detail endpoints
	dg := qg.Group("/:name", queueRoleMiddleware())
	dg.GET("", api.retrieve)
	dg.GET("/current", api.current)
	dg.POST("/decision", api.decide)
	dg.POST("/purchase", api.purchase)
	dg.POST("/reset", api.reset)
	dg.POST("/upload", api.upload)
	dg.POST("/upload.csv", api.uploadCSV)
}

// Handlers

func (api *queueAPI) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, QueueListResponse{Queues: api.svc.Names()})
}

func (api *queueAPI) retrieve(ctx echo.Context) error {
	state, err := api.svc.Get(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "getting queue")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *queueAPI) current(ctx echo.Context) error {
	progress, err := api.svc.Current(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "getting current item")
	}
	return ctx.JSON(http.StatusOK, progress)
}

func (api *queueAPI) decide(ctx echo.Context) error {
	var data review.Decision
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Decision")
	}

	progress, err := api.svc.Decide(ctx.Request().Context(), ctx.Param("name"), data)
	if err != nil {
		return errors.Wrap(err, "deciding")
	}
	return ctx.JSON(http.StatusOK, progress)
}

func (api *queueAPI) purchase(ctx echo.Context) error {
	if ctx.Param("name") != review.InventoryQueue.Name {
		return errHttpNotFound
	}

	var data PurchaseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PurchaseRequest")
	}
	data.Decision = core.CleanString(data.Decision, true /* lower */)
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	progress, err := api.svc.Decide(ctx.Request().Context(), ctx.Param("name"), data.toDecision())
	if err != nil {
		return errors.Wrap(err, "deciding purchase")
	}
	return ctx.JSON(http.StatusOK, progress)
}

func (api *queueAPI) reset(ctx echo.Context) error {
	progress, err := api.svc.Reset(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "resetting queue")
	}
	return ctx.JSON(http.StatusOK, progress)
}

func (api *queueAPI) upload(ctx echo.Context) error {
	// a JSON array of rows; the default binder only binds structs and maps
	var rows []map[string]interface{}
	if err := json.NewDecoder(ctx.Request().Body).Decode(&rows); err != nil {
		return core.NewValidationError(errors.New("invalid upload: expecting a JSON array of rows"))
	}

	progress, err := api.svc.Upload(ctx.Request().Context(), ctx.Param("name"), rows)
	if err != nil {
		return errors.Wrap(err, "uploading rows")
	}
	return ctx.JSON(http.StatusCreated, progress)
}

func (api *queueAPI) uploadCSV(ctx echo.Context) error {
	progress, err := api.svc.UploadCSV(ctx.Request().Context(), ctx.Param("name"), ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "uploading csv")
	}
	return ctx.JSON(http.StatusCreated, progress)
}
