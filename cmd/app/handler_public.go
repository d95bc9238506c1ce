package main

import (
	"net/http"

	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/publicservice"
)

func (app *application) feedHandler(w http.ResponseWriter, r *http.Request) {
	v := common.NewValidator()
	qs := r.URL.Query()
	page := app.readInt(qs, "page", 1, v)
	limit := app.readInt(qs, "limit", publicservice.DefaultFeedLimit, v)
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	feed, err := app.publicService.Feed(r.Context(), page, limit)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, feed, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) popularHandler(w http.ResponseWriter, r *http.Request) {
	v := common.NewValidator()
	limit := app.readInt(r.URL.Query(), "limit", publicservice.DefaultPopularLimit, v)
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	blogs, err := app.publicService.Popular(r.Context(), limit)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// publicBlogHandler serves a published blog by slug. With ?comments=true the
// response also carries a page of its comments; page and limit are clamped by
// the service.
func (app *application) publicBlogHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readStringParam(r, "slug")
	viewerID := app.viewerID(r)
	qs := r.URL.Query()

	var (
		blog *publicservice.BlogDetail
		err  error
	)

	if app.readFlag(qs, "comments") {
		page := app.readIntOrDefault(qs, "page", 1)
		limit := app.readIntOrDefault(qs, "limit", publicservice.InlineCommentsLimit)
		blog, err = app.publicService.BlogBySlugWithComments(r.Context(), slug, page, limit, viewerID)
	} else {
		blog, err = app.publicService.BlogBySlug(r.Context(), slug, viewerID)
	}
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
