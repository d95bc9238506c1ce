package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	cfg := app.config

	// routes without their own limit share the global one
	handle := func(method, path string, h http.HandlerFunc) {
		router.Handler(method, path, app.instrument(path, app.rateLimit("global", cfg.RateLimitGlobal, h)))
	}

	// a route limit replaces the global one
	limited := func(method, path, resource string, limit int, h http.HandlerFunc) {
		router.Handler(method, path, app.instrument(path, app.rateLimit(resource, limit, h)))
	}

	handle(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// auth
	limited(http.MethodPost, "/api/auth/register", "auth-register", cfg.RateLimitAuthRegister, app.registerUserHandler)
	limited(http.MethodPost, "/api/auth/login", "auth-login", cfg.RateLimitAuthLogin, app.loginUserHandler)
	limited(http.MethodGet, "/api/auth/profile", "profile", cfg.RateLimitProfile, app.requireAuthUser(app.profileHandler))

	// blogs
	handle(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	handle(http.MethodGet, "/api/blogs", app.requireAuthUser(app.listBlogsHandler))
	handle(http.MethodGet, "/api/blogs/:id", app.requireAuthUser(app.getBlogHandler))
	handle(http.MethodPatch, "/api/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	handle(http.MethodDelete, "/api/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))

	// comments
	handle(http.MethodPost, "/api/blogs/:id/comments", app.requireAuthUser(app.createCommentHandler))
	handle(http.MethodGet, "/api/blogs/:id/comments", app.listCommentsHandler)
	handle(http.MethodDelete, "/api/blogs/:id/comments", app.requireAuthUser(app.deleteBlogCommentsHandler))
	handle(http.MethodGet, "/api/blogs/:id/comments/:commentID", app.getCommentHandler)
	handle(http.MethodPatch, "/api/blogs/:id/comments/:commentID", app.requireAuthUser(app.updateCommentHandler))
	handle(http.MethodDelete, "/api/blogs/:id/comments/:commentID", app.requireAuthUser(app.deleteCommentHandler))

	// likes
	handle(http.MethodPost, "/api/blogs/:id/likes", app.requireAuthUser(app.likeBlogHandler))
	handle(http.MethodDelete, "/api/blogs/:id/likes", app.requireAuthUser(app.unlikeBlogHandler))
	handle(http.MethodGet, "/api/blogs/:id/likes", app.recentLikesHandler)
	handle(http.MethodGet, "/api/blogs/:id/likes/status", app.requireAuthUser(app.likeStatusHandler))

	// public
	limited(http.MethodGet, "/api/public/feed", "public-feed", cfg.RateLimitPublicFeed, app.feedHandler)
	limited(http.MethodGet, "/api/public/popular", "public-popular", cfg.RateLimitPublicPopular, app.popularHandler)
	limited(http.MethodGet, "/api/public/blogs/:slug", "public-blog", cfg.RateLimitPublicBlog, app.publicBlogHandler)

	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	return app.recoverPanic(app.logRequest(app.enableCORS(app.authenticate(router))))
}
