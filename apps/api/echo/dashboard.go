package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/dashboard"
	"github.com/ishanya/ishanya/core/form"
	"github.com/ishanya/ishanya/core/user"
)

type dashboardAPI struct {
	svc *dashboard.Service
}

type notificationResponse struct {
	Notification form.Notification `json:"notification"`
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := &dashboardAPI{svc: deps.DashboardSvc}

	dash := g.Group("/dashboard", jwt)

	admin := dash.Group("/admin", roleMiddleware(user.RoleAdmin))
	admin.GET("", api.admin)
	admin.POST("/appointments", api.scheduleAppointment)

	dash.GET("/employee", api.employee, roleMiddleware(user.RoleEmployee, user.RoleAdmin))
	dash.GET("/parent", api.parent, roleMiddleware(user.RoleParent, user.RoleAdmin))
}

func (api *dashboardAPI) admin(ctx echo.Context) error {
	var filter dashboard.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return err
	}
	view, err := api.svc.Admin(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *dashboardAPI) scheduleAppointment(ctx echo.Context) error {
	var sa dashboard.ScheduleAppointment
	if err := ctx.Bind(&sa); err != nil {
		return err
	}
	msg, err := api.svc.ScheduleAppointment(ctx.Request().Context(), sa)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notificationResponse{
		Notification: form.Notification{Kind: form.NotifySuccess, Title: "Appointment scheduled", Description: msg},
	})
}

func (api *dashboardAPI) employee(ctx echo.Context) error {
	view, err := api.svc.Employee(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

// parent shows `?child=<id>`, the first child by default.
func (api *dashboardAPI) parent(ctx echo.Context) error {
	var childID int
	if s := ctx.QueryParam("child"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id < 1 {
			return core.NewValidationError(nil, core.FieldError{Field: "child", Error: "invalid child id"})
		}
		childID = id
	}
	view, err := api.svc.Parent(ctx.Request().Context(), childID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
