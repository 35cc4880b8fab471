package userpayload

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// UserPayload is the public view of a user: id and username only.
type UserPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func NewUserPayloadResponse(user model.User) *UserPayload {
	return &UserPayload{ID: user.ID, Username: user.Username}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewUserListResponse(users []model.User) []render.Renderer {
	list := []render.Renderer{}
	for _, u := range users {
		list = append(list, NewUserPayloadResponse(u))
	}

	return list
}

// CredentialsRequest is the body of both login and register.
type CredentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Bind on CredentialsRequest will run after the unmarshalling is complete.
func (c *CredentialsRequest) Bind(r *http.Request) error {
	if c.Username == nil || c.Password == nil {
		return errors.New("username and password are required.")
	}

	return nil
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *UserPayload `json:"user"`
}

func (l *LoginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type RegisterResponse struct {
	Success bool         `json:"success"`
	User    *UserPayload `json:"user"`
}

func (rr *RegisterResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// StatusResponse answers the session check. User is omitted when the
// caller is not authenticated.
type StatusResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *UserPayload `json:"user,omitempty"`
}

func (s *StatusResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func (s *SuccessResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
