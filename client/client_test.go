package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SergeyParamoshkin/news/internal/article"
	"github.com/SergeyParamoshkin/news/internal/server"
	"github.com/SergeyParamoshkin/news/internal/session"
	"github.com/SergeyParamoshkin/news/internal/store"
	"github.com/SergeyParamoshkin/news/internal/upload"
	"github.com/SergeyParamoshkin/news/internal/user"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	s := store.NewMemory()
	if err := store.Seed(context.Background(), s); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	uploads, err := upload.New(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("upload.New() error: %v", err)
	}
	tokens, err := session.New(session.ModeJWT, "test-secret", 0)
	if err != nil {
		t.Fatalf("session.New() error: %v", err)
	}

	ts := httptest.NewServer(server.NewRouter(server.Options{
		Users:      user.NewAPI(user.NewService(s, tokens)),
		News:       article.NewAPI(s, uploads, "http://news.test"),
		UploadsDir: uploads.Dir(),
	}))
	t.Cleanup(ts.Close)

	return &Client{Client: *ts.Client(), Addr: ts.URL}
}

func TestClientPing(t *testing.T) {
	c := newTestClient(t)

	got, err := c.Ping(context.Background())
	if err != nil || got != "pong" {
		t.Fatalf("Ping() = %q, %v", got, err)
	}
}

func TestClientAuth(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	status, err := c.AuthStatus(ctx)
	if err != nil {
		t.Fatalf("AuthStatus() error: %v", err)
	}
	if status.IsAuthenticated {
		t.Error("expected anonymous status before login")
	}

	var apiErr *Error
	if _, err := c.Login(ctx, "admin", "wrong"); !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if apiErr.Message != "username or password incorrect" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}

	u, err := c.Register(ctx, "reader", "pw")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if diff := cmp.Diff(User{ID: 3, Username: "reader"}, u); diff != "" {
		t.Errorf("registered user mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Register(ctx, "reader", "other"); !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}

	if _, err := c.Login(ctx, "reader", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	status, err = c.AuthStatus(ctx)
	if err != nil {
		t.Fatalf("AuthStatus() error: %v", err)
	}
	if diff := cmp.Diff(Status{IsAuthenticated: true, User: &User{ID: 3, Username: "reader"}}, status); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestClientNewsLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	title, description := "T", "D"
	var apiErr *Error
	if _, err := c.CreateNews(ctx, NewsFields{Title: &title}); !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %v", err)
	}

	if _, err := c.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	created, err := c.CreateNews(ctx, NewsFields{Title: &title, Description: &description})
	if err != nil {
		t.Fatalf("CreateNews() error: %v", err)
	}
	if created.ID != 10 || created.Author != "admin" || created.Title != "T" || created.Description != "D" || created.CreatedAt.IsZero() {
		t.Errorf("unexpected created article %+v", created)
	}

	renamed := "T2"
	updated, err := c.UpdateNews(ctx, created.ID, NewsFields{Title: &renamed})
	if err != nil {
		t.Fatalf("UpdateNews() error: %v", err)
	}
	if updated.Title != "T2" || updated.Description != "D" || updated.UpdatedAt == nil {
		t.Errorf("unexpected updated article %+v", updated)
	}

	got, err := c.GetNews(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetNews() error: %v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("article mismatch (-want +got):\n%s", diff)
	}

	list, err := c.ListNews(ctx)
	if err != nil {
		t.Fatalf("ListNews() error: %v", err)
	}
	if len(list) != 10 {
		t.Errorf("expected 10 articles, got %d", len(list))
	}

	if err := c.DeleteNews(ctx, created.ID); err != nil {
		t.Fatalf("DeleteNews() error: %v", err)
	}
	if err := c.DeleteNews(ctx, created.ID); !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %v", err)
	}
	if apiErr.Message != "News not found." {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}
