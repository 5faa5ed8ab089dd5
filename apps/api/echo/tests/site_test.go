package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanya/ishanya/core/site"
)

func TestSiteContent(t *testing.T) {
	app := setup(t)
	tt := httpTest{wantCode: http.StatusOK, wantData: marshalObj(t, site.Landing())}

	req, rec := newRequest(http.MethodGet, "/v1/site")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func TestActiveTestimonial(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/v1/site/testimonials/active")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Index       int              `json:"index"`
		Testimonial site.Testimonial `json:"testimonial"`
		Interval    int64            `json:"intervalMs"`
	}
	decode(t, rec, &resp)
	testimonials := site.Landing().Testimonials
	require.True(t, resp.Index >= 0 && resp.Index < len(testimonials))
	assert.Equal(t, testimonials[resp.Index], resp.Testimonial)
	assert.Equal(t, int64(5000), resp.Interval)
}
