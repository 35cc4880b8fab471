// Package server wires the HTTP routes of the news API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/article"
	"github.com/SergeyParamoshkin/news/internal/articleresponse"
	"github.com/SergeyParamoshkin/news/internal/logger"
	"github.com/SergeyParamoshkin/news/internal/metrics"
	"github.com/SergeyParamoshkin/news/internal/upload"
	"github.com/SergeyParamoshkin/news/internal/user"
)

type Options struct {
	Logger      *zap.Logger
	Metrics     *metrics.Recorder // optional
	Users       *user.API
	News        *article.API
	UploadsDir  string
	CORSOrigins []string
}

func NewRouter(o Options) chi.Router {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logger.Middleware(log.Sugar()))
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.Recoverer)
	if o.Metrics != nil {
		r.Use(o.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: o.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.URLFormat)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("pong")); err != nil {
			logger.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", o.Users.Login)
		r.Post("/register", o.Users.Register)
		r.Post("/logout", o.Users.Logout)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/status", o.Users.AuthStatus)
			r.Post("/logout", o.Users.Logout)
			r.With(o.Users.RequireUser).Get("/me", o.Users.Me)
		})

		// RESTy routes for the public "news" resource
		r.Route("/news", func(r chi.Router) {
			r.With(article.Paginate).Get("/", o.News.ListArticles)           // GET /api/news
			r.With(article.Paginate).Get("/search", o.News.SearchArticles)   // GET /api/news/search
			r.With(o.News.ArticleCtx).Get("/{articleID}", o.News.GetArticle) // GET /api/news/123
		})

		// Mount the admin sub-router, which btw is the same as:
		// r.Route("/admin", func(r chi.Router) { admin routes here })
		r.Mount("/admin", adminRouter(o))
	})

	upload.FileServer(r, articleresponse.UploadsPath, http.Dir(o.UploadsDir))

	return r
}

// A completely separate router for routes that need a logged in user.
func adminRouter(o Options) chi.Router {
	r := chi.NewRouter()
	r.Use(o.Users.RequireUser)

	r.Route("/news", func(r chi.Router) {
		r.With(article.Paginate).Get("/", o.News.ListMyArticles) // GET /api/admin/news
		r.Post("/", o.News.CreateArticle)                        // POST /api/admin/news

		r.Route("/{articleID}", func(r chi.Router) {
			r.Use(o.News.ArticleCtx)
			r.Put("/", o.News.UpdateArticle)    // PUT /api/admin/news/123
			r.Delete("/", o.News.DeleteArticle) // DELETE /api/admin/news/123
		})
	})

	r.Post("/uploads", o.News.UploadImage)

	r.Get("/users", o.Users.ListUsers)
	r.Get("/users/{userID}", o.Users.GetUser)

	return r
}
