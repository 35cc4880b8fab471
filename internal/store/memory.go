package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// Memory keeps both collections in process memory. The zero value is not
// usable, use NewMemory.
type Memory struct {
	mu sync.RWMutex

	articles      []model.Article
	users         []model.User
	lastArticleID int64
	lastUserID    int64
}

func NewMemory() *Memory {
	return &Memory{
		articles: make([]model.Article, 0),
		users:    make([]model.User, 0),
	}
}

func (m *Memory) ListArticles(ctx context.Context) ([]model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]model.Article, len(m.articles))
	copy(result, m.articles)

	return result, nil
}

func (m *Memory) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.articleIndex(id); i >= 0 {
		return m.articles[i], nil
	}

	return model.Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
}

func (m *Memory) CreateArticle(ctx context.Context, a model.Article) (model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastArticleID++
	a.ID = m.lastArticleID
	m.articles = append(m.articles, a)

	return a, nil
}

func (m *Memory) UpdateArticle(ctx context.Context, id int64, fn func(model.Article) model.Article) (model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.articleIndex(id)
	if i < 0 {
		return model.Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}

	updated := fn(m.articles[i])
	updated.ID = id
	m.articles[i] = updated

	return updated, nil
}

func (m *Memory) DeleteArticle(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.articleIndex(id)
	if i < 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	m.articles = append(m.articles[:i], m.articles[i+1:]...)

	return nil
}

func (m *Memory) articleIndex(id int64) int {
	for i, a := range m.articles {
		if a.ID == id {
			return i
		}
	}

	return -1
}

func (m *Memory) ListUsers(ctx context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]model.User, len(m.users))
	copy(result, m.users)

	return result, nil
}

func (m *Memory) GetUser(ctx context.Context, id int64) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}

	return model.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}

	return model.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

func (m *Memory) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username {
			return model.User{}, fmt.Errorf("user %q: %w", u.Username, ErrConflict)
		}
	}

	m.lastUserID++
	u.ID = m.lastUserID
	m.users = append(m.users, u)

	return u, nil
}

func (m *Memory) Close() error {
	return nil
}
