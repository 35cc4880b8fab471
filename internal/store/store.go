// Package store holds the news catalog and the user accounts behind a
// single Store interface. Two backends are provided: an in-memory one
// and a SQLite one.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyParamoshkin/news/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Articles is the news catalog.
type Articles interface {
	ListArticles(ctx context.Context) ([]model.Article, error)
	GetArticle(ctx context.Context, id int64) (model.Article, error)
	// CreateArticle assigns a fresh id to a and stores it. Ids are never
	// reused, even after deletions.
	CreateArticle(ctx context.Context, a model.Article) (model.Article, error)
	// UpdateArticle replaces the article with fn(current). The read, fn and
	// the write happen atomically with respect to other writers.
	UpdateArticle(ctx context.Context, id int64, fn func(model.Article) model.Article) (model.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
}

// Users is the identity store.
type Users interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	// CreateUser returns ErrConflict when the username is taken.
	CreateUser(ctx context.Context, u model.User) (model.User, error)
}

type Store interface {
	Articles
	Users
	Close() error
}

// Open returns the backend selected by driver.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		s, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}

		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
