package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/logger"
	"github.com/SergeyParamoshkin/news/internal/store"
	"github.com/SergeyParamoshkin/news/internal/userpayload"
)

// API serves the account endpoints.
type API struct {
	service *Service
}

func NewAPI(service *Service) *API {
	return &API{service: service}
}

func respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logger.FromContext(r.Context()).Errorw("rendering response", "error", err)
	}
}

// Login checks the posted credentials and hands out a session token.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.CredentialsRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))
		return
	}

	token, u, err := a.service.Login(r.Context(), *data.Username, *data.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		respond(w, r, errresponse.ErrAuthFailed(http.StatusUnauthorized, err.Error()))
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Errorw("login", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	respond(w, r, &userpayload.LoginResponse{
		Success: true,
		Token:   token,
		User:    userpayload.NewUserPayloadResponse(u),
	})
}

// Register creates a new account from the posted credentials.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.CredentialsRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))
		return
	}

	u, err := a.service.Register(r.Context(), *data.Username, *data.Password)
	if errors.Is(err, ErrConflict) {
		respond(w, r, errresponse.ErrAuthFailed(http.StatusConflict, err.Error()))
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Errorw("register", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	logger.FromContext(r.Context()).Infow("user registered", "user_id", u.ID, "username", u.Username)
	respond(w, r, &userpayload.RegisterResponse{
		Success: true,
		User:    userpayload.NewUserPayloadResponse(u),
	})
}

// AuthStatus reports whether the optional bearer token belongs to a user.
// It never fails with 401.
func (a *API) AuthStatus(w http.ResponseWriter, r *http.Request) {
	u, err := a.service.Authenticate(r.Context(), BearerToken(r))
	if err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			logger.FromContext(r.Context()).Errorw("auth status", "error", err)
		}
		respond(w, r, &userpayload.StatusResponse{IsAuthenticated: false})
		return
	}

	respond(w, r, &userpayload.StatusResponse{
		IsAuthenticated: true,
		User:            userpayload.NewUserPayloadResponse(u),
	})
}

// Me returns the caller. Must run behind RequireUser.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := FromContext(r.Context())
	respond(w, r, userpayload.NewUserPayloadResponse(u))
}

// Logout exists for clients that call it. Tokens are stateless, so the
// client dropping its token is the whole logout.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	respond(w, r, &userpayload.SuccessResponse{Success: true})
}

func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.service.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("listing users", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	if err := render.RenderList(w, r, userpayload.NewUserListResponse(users)); err != nil {
		respond(w, r, errresponse.ErrRender(err))
	}
}

func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respond(w, r, errresponse.ErrNotFound)
		return
	}

	u, err := a.service.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respond(w, r, errresponse.ErrNotFound)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Errorw("getting user", "user_id", id, "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	respond(w, r, userpayload.NewUserPayloadResponse(u))
}
