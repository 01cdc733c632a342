//
// board
// =====
// A question/answer discussion-board REST service: users post
// articles, answer them and upvote them (one vote per user per
// article).
//
// Boot the server:
// ----------------
// $ go run main.go
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"username":"alice","password":"secret1"}' http://localhost:3333/users
// $ curl -X POST -d '{"username":"alice","password":"secret1"}' http://localhost:3333/auth/token
// {"token":"..."}
//
// $ curl -H "Authorization: Bearer $TOKEN" -X POST -d '{"title":"Hello","content":"World"}' http://localhost:3333/articles
// {"id":1,"title":"Hello",...}
//
// $ curl 'http://localhost:3333/articles?page=0&kw=Hello'
// {"items":[...],"total":1,"page":0,"size":10}
//
// $ curl -H "Authorization: Bearer $TOKEN" -X POST http://localhost:3333/articles/1/vote
// {"count":1}
//
// Passing -routes generates the router documentation instead of
// serving.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"

	"github.com/mkarpushin/board/internal/answer"
	"github.com/mkarpushin/board/internal/article"
	"github.com/mkarpushin/board/internal/auth"
	"github.com/mkarpushin/board/internal/config"
	"github.com/mkarpushin/board/internal/store"
	"github.com/mkarpushin/board/internal/user"
	"github.com/mkarpushin/board/internal/votecache"
)

const ServiceName = "board"

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

type App struct {
	sugarLogger *zap.SugaredLogger
}

// nolint
func main() {
	// nolint
	var (
		routes   = flag.Bool("routes", getEnvBool(ServiceName+"_routes", false), "Generate router documentation")
		addr     = flag.String("addr", getEnv(ServiceName+"_ADDR", ":3333"), "application port")
		diagPort = flag.String("diag_addr", getEnv(ServiceName+"_DIAG_ADDR", ":9999"), "diag port")
	)

	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync() // flushes buffer, if any
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	a := App{
		sugarLogger: sugar,
	}

	promConfig := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(promConfig.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)
	exporter, err := prometheus.New(promConfig, c)
	if err != nil {
		a.sugarLogger.Panicf("failed to initialize prometheus exporter %v", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	meter := global.Meter(ServiceName)
	labels := []attribute.KeyValue{
		attribute.String("status", "200")}
	requestCompletedCount := metric.Must(meter).NewInt64Counter(
		"http/server/completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	).Bind(labels...)
	defer requestCompletedCount.Unbind()

	conf := config.GetGlobalConf()

	db, err := store.GetDB()
	if err != nil {
		a.sugarLogger.Panicf("failed to connect to database: %v", err)
	}

	var votes *votecache.Cache
	rdb, err := votecache.Open(conf.RedisConfig)
	if err != nil {
		// The database stays the source of truth; run without the
		// cache when redis is unreachable.
		a.sugarLogger.Errorw("redis unavailable, vote counts served from db", "err", err)
	} else {
		votes = votecache.New(rdb, votecache.DefaultTTL)
	}

	users := user.NewDirectory(db)
	tokens := auth.NewJWT(conf.JWTConfig.SigningKey, conf.JWTConfig.TokenTTL)
	guard := auth.New(tokens, users)

	articles := article.NewResource(article.NewService(article.NewStore(db), votes))
	answers := answer.NewResource(answer.NewService(answer.NewStore(db)))

	r := chi.NewRouter()

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	r.Use(middleware.RequestID)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("root."))
		if err != nil {
			sugar.Errorw(err.Error())
		}
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logger := r.Context().Value(CtxKeyLogger).(*zap.SugaredLogger)
		logger.Infow("ping with middle")
		requestCompletedCount.Add(r.Context(), 1)
		_, err := w.Write([]byte("pong"))
		if err != nil {
			sugar.Errorw(err.Error())
		}
	})

	r.Post("/users", guard.Signup)
	r.Post("/auth/token", guard.Login)
	r.Post("/auth/refresh", guard.Refresh)

	// RESTy routes for "articles" resource
	r.Route("/articles", func(r chi.Router) {
		r.With(article.Paginate).Get("/", articles.List)
		r.With(article.Paginate).Get("/search", articles.Search)
		r.With(guard.RequireUser).Post("/", articles.Create)

		r.Route("/{articleID}", func(r chi.Router) {
			r.Use(articles.ArticleCtx) // Load the *Article on the request context
			r.Get("/", articles.Get)
			r.With(guard.RequireUser).Put("/", articles.Update)
			r.With(guard.RequireUser).Delete("/", articles.Delete)
			r.With(guard.RequireUser).Post("/vote", articles.Vote)

			r.Get("/answers", answers.List)
			r.With(guard.RequireUser).Post("/answers", answers.Create)
		})
	})

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if *routes {
		// nolint
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/mkarpushin/board",
			Intro:       "Welcome to the board generated docs.",
		}))

		return
	}

	go func() {
		err = http.ListenAndServe(*addr, r)
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	}()

	err = http.ListenAndServe(*diagPort, diagRouter)
	if err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, a.sugarLogger)))
	})
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return fallback
}
