package user

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/logger"
	"github.com/SergeyParamoshkin/news/internal/model"
)

type ctxKey int8

const ctxKeyUser ctxKey = iota

// BearerToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when there is none.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

func NewContext(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// FromContext returns the user put on the context by RequireUser.
func FromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(model.User)

	return u, ok
}

// RequireUser middleware stops requests without a valid bearer token with
// a 401. Any authenticated user passes; there is no per-article ownership.
func (a *API) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := a.service.Authenticate(r.Context(), BearerToken(r))
		if err != nil {
			var resp render.Renderer = errresponse.ErrUnauthorized
			if !errors.Is(err, ErrUnauthorized) {
				logger.FromContext(r.Context()).Errorw("authenticating request", "error", err)
				resp = errresponse.ErrInternal(err)
			}
			if err := render.Render(w, r, resp); err != nil {
				logger.FromContext(r.Context()).Errorw(err.Error())
			}

			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), u)))
	})
}
