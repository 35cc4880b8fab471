//
// News
// ====
// A HTTP REST service for a news front-end: login, registration and a
// news catalog whose write routes need a logged in user.
//
// Print the route docs with `go run . -routes`.
//
// Boot the server:
// ----------------
// $ go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:5005/ping
// pong
//
// $ curl -X POST -d '{"username":"admin","password":"admin123"}' http://localhost:5005/api/login
// {"success":true,"token":"eyJhbGciOi...","user":{"id":1,"username":"admin"}}
//
// $ curl http://localhost:5005/api/news/1
// {"id":1,"title":"FeedMusic launches a brand new listening experience",...}
//
// $ curl -X POST -H 'Authorization: Bearer eyJhbGciOi...' -d '{"title":"T","description":"D"}' http://localhost:5005/api/admin/news
// {"id":10,"title":"T","description":"D","author":"admin","createdAt":"..."}
//
// $ curl -X DELETE -H 'Authorization: Bearer eyJhbGciOi...' http://localhost:5005/api/admin/news/10
// {"success":true}
//
// $ curl http://localhost:5005/api/news/10
// {"message":"News not found."}
//
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/metric/global"

	"github.com/SergeyParamoshkin/news/internal/article"
	"github.com/SergeyParamoshkin/news/internal/config"
	"github.com/SergeyParamoshkin/news/internal/logger"
	"github.com/SergeyParamoshkin/news/internal/metrics"
	"github.com/SergeyParamoshkin/news/internal/server"
	"github.com/SergeyParamoshkin/news/internal/session"
	"github.com/SergeyParamoshkin/news/internal/store"
	"github.com/SergeyParamoshkin/news/internal/upload"
	"github.com/SergeyParamoshkin/news/internal/user"
)

// nolint
func main() {
	// A missing .env is fine, the environment and config file still apply.
	_ = godotenv.Load()

	// nolint
	var (
		routes     = flag.Bool("routes", config.GetEnvBool("NEWS_ROUTES", false), "Generate router documentation")
		configPath = flag.String("config", config.GetEnv("NEWS_CONFIG", "config.yaml"), "path to the YAML config file")
		addr       = flag.String("addr", "", "application address, overrides the config")
		diagAddr   = flag.String("diag_addr", "", "diag address, overrides the config")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *diagAddr != "" {
		cfg.Server.DiagAddr = *diagAddr
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer zl.Sync() // flushes buffer, if any
	sugar := zl.Sugar()

	exporter, err := metrics.NewExporter()
	if err != nil {
		sugar.Panicf("%v", err)
	}

	recorder, err := metrics.NewRecorder(global.Meter(config.ServiceName))
	if err != nil {
		sugar.Panicf("failed to create request instruments %v", err)
	}

	db, err := store.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		sugar.Panicf("failed to open %s store %v", cfg.Storage.Driver, err)
	}
	defer db.Close()

	if err := store.Seed(context.Background(), db); err != nil {
		sugar.Panicf("failed to seed store %v", err)
	}

	if cfg.Auth.UsesDefaultSecret() {
		sugar.Warnw("signing tokens with the default jwt secret, set auth.jwt_secret or NEWS_JWT_SECRET")
	}

	ttl, _ := cfg.Auth.TTL() // checked by config.Validate
	tokens, err := session.New(cfg.Auth.TokenMode, cfg.Auth.JWTSecret, ttl)
	if err != nil {
		sugar.Panicf("failed to create token issuer %v", err)
	}

	uploads, err := upload.New(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		sugar.Panicf("failed to prepare uploads dir %v", err)
	}

	r := server.NewRouter(server.Options{
		Logger:      zl,
		Metrics:     recorder,
		Users:       user.NewAPI(user.NewService(db, tokens)),
		News:        article.NewAPI(db, uploads, cfg.Server.BaseURL),
		UploadsDir:  uploads.Dir(),
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if *routes {
		// nolint
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/news",
			Intro:       "Routes of the news API.",
		}))

		return
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	sugar.Infow("starting news api",
		"addr", cfg.Server.Addr,
		"diag_addr", cfg.Server.DiagAddr,
		"storage", cfg.Storage.Driver,
		"token_mode", cfg.Auth.TokenMode,
	)

	go func() {
		if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
			sugar.Errorw(err.Error())
		}
	}()

	if err := http.ListenAndServe(cfg.Server.DiagAddr, diagRouter); err != nil {
		sugar.Errorw(err.Error())
	}
}
