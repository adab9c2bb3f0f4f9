package server

import (
	"fmt"
	"net/http"

	"github.com/dimitrije/inventory-api/internal/handlers"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/middleware"
	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/justinas/alice"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
)

// Methods a known path answers with 405 unless it serves them. OPTIONS is
// answered by the CORS middleware.
var guardedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
}

type Options struct {
	Production bool
	Logger     logging.Logger
	Verifier   middleware.Verifier
	Inventory  *handlers.InventoryHandler
	Uploads    *handlers.UploadHandler
}

type route struct {
	method   string
	path     string
	handlers []drift.HandlerFunc
}

// NewRouter builds the drift application serving the /api routes.
func NewRouter(opts Options) *drift.Engine {
	app := drift.New()

	if opts.Production {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(driftmw.RecoveryWithHandler(func(c *drift.Context, err any) {
		opts.Logger.Error(c.Request.Context(), "panic recovered", "path", c.Path(), "panic", fmt.Sprint(err))
		c.ErrorWithData(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
	}))
	app.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	api := app.Group("/api")
	requireWrite := middleware.Authorize(opts.Verifier, handlers.ScopeWrite, opts.Logger)

	register(api, []route{
		{http.MethodGet, "/inventory", []drift.HandlerFunc{opts.Inventory.List}},
		{http.MethodPost, "/inventory", []drift.HandlerFunc{requireWrite, opts.Inventory.Upsert}},
		{http.MethodPost, "/uploads", []drift.HandlerFunc{requireWrite, opts.Uploads.Record}},
		{http.MethodGet, "/health", []drift.HandlerFunc{handlers.Health}},
	})

	return app
}

// NewHandler wraps the router with request ids and access logging.
func NewHandler(router http.Handler, logger logging.Logger) http.Handler {
	return alice.New(middleware.RequestID, middleware.Logger(logger)).Then(router)
}

func register(g *drift.RouterGroup, routes []route) {
	served := make(map[string]map[string]bool)
	var paths []string

	for _, r := range routes {
		if served[r.path] == nil {
			served[r.path] = make(map[string]bool)
			paths = append(paths, r.path)
		}
		served[r.path][r.method] = true
		handle(g, r.method, r.path, r.handlers...)
	}

	for _, path := range paths {
		for _, method := range guardedMethods {
			if !served[path][method] {
				handle(g, method, path, middleware.MethodNotAllowed)
			}
		}
	}
}

func handle(g *drift.RouterGroup, method, path string, h ...drift.HandlerFunc) {
	switch method {
	case http.MethodGet:
		g.Get(path, h...)
	case http.MethodPost:
		g.Post(path, h...)
	case http.MethodPut:
		g.Put(path, h...)
	case http.MethodPatch:
		g.Patch(path, h...)
	case http.MethodDelete:
		g.Delete(path, h...)
	case http.MethodHead:
		g.Head(path, h...)
	default:
		panic("unsupported method " + method)
	}
}
