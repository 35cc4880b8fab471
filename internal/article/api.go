package article

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/articlerequest"
	"github.com/SergeyParamoshkin/news/internal/articleresponse"
	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/logger"
	"github.com/SergeyParamoshkin/news/internal/model"
	"github.com/SergeyParamoshkin/news/internal/store"
	"github.com/SergeyParamoshkin/news/internal/upload"
	"github.com/SergeyParamoshkin/news/internal/user"
)

// API serves the news catalog.
type API struct {
	store   store.Articles
	uploads *upload.Store
	baseURL string
	now     func() time.Time
}

func NewAPI(articles store.Articles, uploads *upload.Store, baseURL string) *API {
	return &API{
		store:   articles,
		uploads: uploads,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for createdAt and updatedAt.
func (a *API) WithClock(now func() time.Time) *API {
	a.now = now
	return a
}

func (a *API) renderList(w http.ResponseWriter, r *http.Request, articles []model.Article) {
	if p, ok := pageFromContext(r.Context()); ok {
		respond(w, r, articleresponse.NewPageResponse(p.slice(articles), a.baseURL, p.number, p.perPage, len(articles)))
		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles, a.baseURL)); err != nil {
		respond(w, r, errresponse.ErrRender(err))
	}
}

// ListArticles returns the whole catalog in insertion order.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.store.ListArticles(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("listing articles", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	a.renderList(w, r, articles)
}

// ListMyArticles returns the articles authored by the caller.
func (a *API) ListMyArticles(w http.ResponseWriter, r *http.Request) {
	u, _ := user.FromContext(r.Context())

	articles, err := a.store.ListArticles(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("listing articles", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	a.renderList(w, r, filter(articles, "", u.Username))
}

// SearchArticles matches q against title and description, case
// insensitively, optionally restricted to one author.
func (a *API) SearchArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.store.ListArticles(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("searching articles", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	q := r.URL.Query()
	a.renderList(w, r, filter(articles, q.Get("q"), q.Get("author")))
}

func filter(articles []model.Article, query, author string) []model.Article {
	query = strings.ToLower(query)

	result := make([]model.Article, 0, len(articles))
	for _, article := range articles {
		if author != "" && article.Author != author {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(article.Title), query) &&
			!strings.Contains(strings.ToLower(article.Description), query) {
			continue
		}
		result = append(result, article)
	}

	return result
}

// GetArticle returns the Article loaded by ArticleCtx.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	respond(w, r, articleresponse.NewArticleResponse(articleFromContext(r.Context()), a.baseURL))
}

// decode reads the news fields from a JSON or multipart/form-data body.
func (a *API) decode(w http.ResponseWriter, r *http.Request) (*articlerequest.ArticleRequest, error) {
	if articlerequest.IsMultipart(r) {
		return articlerequest.FromMultipart(w, r, a.uploads, a.uploads.MaxBytes())
	}

	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		return nil, err
	}

	return data, nil
}

// CreateArticle stores the posted Article with the caller as author and
// returns it back to the client as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	u, _ := user.FromContext(r.Context())

	data, err := a.decode(w, r)
	if err == nil && data.ArticlePatch.Empty() {
		err = errors.New("missing required news fields.")
	}
	if err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))
		return
	}

	article := data.Apply(model.Article{})
	article.Author = u.Username
	article.CreatedAt = a.now().UTC()

	article, err = a.store.CreateArticle(r.Context(), article)
	if err != nil {
		logger.FromContext(r.Context()).Errorw("creating article", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	logger.FromContext(r.Context()).Infow("article created", "article_id", article.ID, "author", article.Author)
	respond(w, r, articleresponse.NewArticleResponse(article, a.baseURL))
}

// UpdateArticle merges the supplied fields into an existing Article.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	current := articleFromContext(r.Context())

	data, err := a.decode(w, r)
	if err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))
		return
	}

	updatedAt := a.now().UTC()
	article, err := a.store.UpdateArticle(r.Context(), current.ID, func(existing model.Article) model.Article {
		merged := data.Apply(existing)
		merged.UpdatedAt = &updatedAt
		return merged
	})
	if errors.Is(err, store.ErrNotFound) {
		respond(w, r, errresponse.ErrNewsNotFound)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Errorw("updating article", "article_id", current.ID, "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	respond(w, r, articleresponse.NewArticleResponse(article, a.baseURL))
}

// DeleteArticle removes an existing Article.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	err := a.store.DeleteArticle(r.Context(), article.ID)
	if errors.Is(err, store.ErrNotFound) {
		respond(w, r, errresponse.ErrNewsNotFound)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Errorw("deleting article", "article_id", article.ID, "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	logger.FromContext(r.Context()).Infow("article deleted", "article_id", article.ID)
	respond(w, r, &articleresponse.DeleteResponse{Success: true})
}

// UploadImage stores the "image" file of a multipart request and returns
// the filename to put into an Article's image field.
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.uploads.MaxBytes())
	if err := r.ParseMultipartForm(a.uploads.MaxBytes()); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		respond(w, r, errresponse.ErrInvalidRequest(errors.New("missing image file.")))
		return
	}

	name, err := a.uploads.Save(files[0])
	if errors.Is(err, upload.ErrUnsupportedType) {
		respond(w, r, errresponse.ErrInvalidRequest(err))
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Errorw("saving upload", "error", err)
		respond(w, r, errresponse.ErrInternal(err))
		return
	}

	respond(w, r, &articleresponse.UploadResponse{
		Filename: name,
		URL:      articleresponse.ImageURL(a.baseURL, name),
	})
}
