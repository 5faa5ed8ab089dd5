package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/site"
)

type activeTestimonial struct {
	Index       int              `json:"index"`
	Testimonial site.Testimonial `json:"testimonial"`
	Interval    int64            `json:"intervalMs"`
}

func registerSiteAPI(g *echo.Group, conf *core.Config) {
	g.GET("/site", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, site.Landing())
	})
	g.GET("/site/testimonials/active", func(ctx echo.Context) error {
		testimonials := site.Landing().Testimonials
		idx := site.ActiveTestimonial(time.Now(), conf.TestimonialDelay, len(testimonials))
		if idx < 0 {
			return errHttpNotFound
		}
		return ctx.JSON(http.StatusOK, activeTestimonial{
			Index:       idx,
			Testimonial: testimonials[idx],
			Interval:    conf.TestimonialDelay.Milliseconds(),
		})
	})
}
