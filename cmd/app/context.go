package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/userservice"
)

type contextKey string

const (
	userContextKey    = contextKey("user")
	requestContextKey = contextKey("request")
)

// requestInfo collects data about the request that error reporting needs after
// the handler has consumed the body.
type requestInfo struct {
	body []byte
}

func (app *application) createUserContext(r *http.Request, user *userservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(userContextKey).(*userservice.User)
	if !ok {
		return &userservice.AnonymousUser
	}
	return user
}

// viewerID is the id of the authenticated user, or uuid.Nil for anonymous requests.
func (app *application) viewerID(r *http.Request) uuid.UUID {
	user := app.getUserContext(r)
	if user.IsAnonymous() {
		return uuid.Nil
	}
	return user.ID
}

func (app *application) createRequestContext(r *http.Request) (*http.Request, *requestInfo) {
	info := &requestInfo{}
	ctx := context.WithValue(r.Context(), requestContextKey, info)
	return r.WithContext(ctx), info
}

func (app *application) getRequestContext(r *http.Request) *requestInfo {
	info, ok := r.Context().Value(requestContextKey).(*requestInfo)
	if !ok {
		return nil
	}
	return info
}
