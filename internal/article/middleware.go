package article

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/logger"
	"github.com/SergeyParamoshkin/news/internal/model"
	"github.com/SergeyParamoshkin/news/internal/store"
)

type ctxKey int8

const (
	ctxKeyArticle ctxKey = iota
	ctxKeyPage
)

const (
	defaultPerPage = 6
	maxPerPage     = 20
)

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil {
			respond(w, r, errresponse.ErrNewsNotFound)
			return
		}

		article, err := a.store.GetArticle(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			respond(w, r, errresponse.ErrNewsNotFound)
			return
		}
		if err != nil {
			logger.FromContext(r.Context()).Errorw("loading article", "article_id", id, "error", err)
			respond(w, r, errresponse.ErrInternal(err))
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func articleFromContext(ctx context.Context) model.Article {
	// Handlers behind ArticleCtx only; the Recoverer catches a missing value.
	return ctx.Value(ctxKeyArticle).(model.Article)
}

type page struct {
	number  int
	perPage int
}

// Paginate reads the page and per_page query parameters. Without page the
// request is left alone and lists stay unpaginated.
func Paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") == "" {
			next.ServeHTTP(w, r)
			return
		}

		p := page{number: 1, perPage: defaultPerPage}
		if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
			p.number = n
		}
		if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 {
			p.perPage = n
		}
		if p.perPage > maxPerPage {
			p.perPage = maxPerPage
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyPage, p)))
	})
}

func pageFromContext(ctx context.Context) (page, bool) {
	p, ok := ctx.Value(ctxKeyPage).(page)

	return p, ok
}

// slice returns the part of articles that falls on p.
func (p page) slice(articles []model.Article) []model.Article {
	if p.perPage <= 0 || p.number < 1 || p.number-1 >= (len(articles)+p.perPage-1)/p.perPage {
		return []model.Article{}
	}
	start := (p.number - 1) * p.perPage
	end := start + p.perPage
	if end > len(articles) {
		end = len(articles)
	}

	return articles[start:end]
}

func respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logger.FromContext(r.Context()).Errorw("rendering response", "error", err)
	}
}
