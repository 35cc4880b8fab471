package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/news/internal/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS news (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT
);
`

const newsColumns = "id, title, description, image, author, created_at, updated_at"

// SQLite stores both collections in a SQLite database. An empty dsn or
// ":memory:" gives a private in-memory database that lives as long as the
// store.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// every connection to :memory: is a separate database, and a single
	// connection also serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (model.Article, error) {
	var (
		a         model.Article
		createdAt string
		updatedAt sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Image, &a.Author, &createdAt, &updatedAt); err != nil {
		return model.Article{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Article{}, fmt.Errorf("parsing created_at: %w", err)
	}
	a.CreatedAt = t

	if updatedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return model.Article{}, fmt.Errorf("parsing updated_at: %w", err)
		}
		a.UpdatedAt = &t
	}

	return a, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: formatTime(*t), Valid: true}
}

func (s *SQLite) ListArticles(ctx context.Context) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+newsColumns+" FROM news ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying news: %w", err)
	}
	defer rows.Close()

	result := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning news row: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

func (s *SQLite) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news WHERE id = ?", id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("scanning article %d: %w", id, err)
	}

	return a, nil
}

func (s *SQLite) CreateArticle(ctx context.Context, a model.Article) (model.Article, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO news (title, description, image, author, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Title, a.Description, a.Image, a.Author, formatTime(a.CreatedAt), formatNullTime(a.UpdatedAt))
	if err != nil {
		return model.Article{}, fmt.Errorf("inserting article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Article{}, fmt.Errorf("reading article id: %w", err)
	}
	a.ID = id

	return a, nil
}

func (s *SQLite) UpdateArticle(ctx context.Context, id int64, fn func(model.Article) model.Article) (model.Article, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Article{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanArticle(tx.QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("scanning article %d: %w", id, err)
	}

	updated := fn(current)
	updated.ID = id

	_, err = tx.ExecContext(ctx, `
		UPDATE news SET title = ?, description = ?, image = ?, author = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		updated.Title, updated.Description, updated.Image, updated.Author,
		formatTime(updated.CreatedAt), formatNullTime(updated.UpdatedAt), id)
	if err != nil {
		return model.Article{}, fmt.Errorf("updating article %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Article{}, fmt.Errorf("committing article %d: %w", id, err)
	}

	return updated, nil
}

func (s *SQLite) DeleteArticle(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}

	return nil
}

func (s *SQLite) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, username, password FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	result := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		result = append(result, u)
	}

	return result, rows.Err()
}

func (s *SQLite) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, "SELECT id, username, password FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("scanning user %d: %w", id, err)
	}

	return u, nil
}

func (s *SQLite) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, "SELECT id, username, password FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("scanning user %q: %w", username, err)
	}

	return u, nil
}

func (s *SQLite) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", u.Username).Scan(&exists)
	if err != nil {
		return model.User{}, fmt.Errorf("checking existing user: %w", err)
	}
	if exists > 0 {
		return model.User{}, fmt.Errorf("user %q: %w", u.Username, ErrConflict)
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO users (username, password) VALUES (?, ?)", u.Username, u.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("committing user: %w", err)
	}
	u.ID = id

	return u, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
