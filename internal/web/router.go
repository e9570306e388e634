// Package web serves the storefront pages over HTTP.
package web

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cacaneves/dev-sistema-codigo/internal/events"
	"github.com/cacaneves/dev-sistema-codigo/internal/middleware/csrf"
	"github.com/cacaneves/dev-sistema-codigo/internal/middleware/requestlog"
	"github.com/cacaneves/dev-sistema-codigo/internal/pages"
)

type Deps struct {
	API    pages.API
	Events events.Publisher
	Logger *slog.Logger
	CSRF   csrf.Config
}

// New returns an echo instance with the renderer, the middleware chain and every route.
func New(d *Deps) (*echo.Echo, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = r

	csrfCfg := d.CSRF
	csrfCfg.SkipPrefixes = append(csrfCfg.SkipPrefixes, "/health")

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestlog.Middleware(logger))
	e.Use(csrf.Middleware(csrfCfg))

	Register(e, d)
	return e, nil
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	h := &Storefront{API: d.API, Events: d.Events}

	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/produtos.html") })
	e.GET("/produtos.html", h.Products)
	e.POST("/produtos/:id/favoritar", h.ToggleFavorite)

	e.GET("/criar_produto.html", h.CreateForm)
	e.POST("/criar_produto.html", h.CreateProduct)

	e.GET("/esqueci_senha.html", h.ForgotForm)
	e.POST("/esqueci_senha.html", h.RequestReset)

	e.GET("/reset_senha.html", h.ResetForm)
	e.POST("/reset_senha.html", h.ConfirmReset)
}
