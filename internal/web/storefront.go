package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
	"github.com/cacaneves/dev-sistema-codigo/internal/logging"
	"github.com/cacaneves/dev-sistema-codigo/internal/pages"
	"github.com/cacaneves/dev-sistema-codigo/internal/session"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

const (
	resetRequestIdle = "Enviar Link"
	resetConfirmIdle = "Alterar Senha"
)

// Storefront builds one set of page controllers per request, bound to a fresh ui.Page and the
// browser's cookies, and renders whatever they leave on the page.
type Storefront struct {
	API    pages.API
	Events events.Publisher
}

func (h *Storefront) productList(c echo.Context, page *ui.Page) *pages.ProductList {
	return &pages.ProductList{
		API:    h.API,
		Tokens: session.FromRequest(c.Request()),
		Board:  page,
		Search: page,
		Alerts: page,
		Events: h.Events,
		Logger: logging.FromContext(c.Request().Context()),
	}
}

func (h *Storefront) Products(c echo.Context) error {
	ctx := c.Request().Context()
	page := ui.NewPage()
	list := h.productList(c, page)

	if c.QueryParam("favoritos") == "1" {
		list.LoadFavorites(ctx)
		if len(page.State().Alerts) > 0 {
			list.Load(ctx, "")
		}
	} else {
		term := c.QueryParam("nome")
		page.SetValue(term)
		list.Load(ctx, term)
	}
	return renderPage(c, "produtos.html", page, nil)
}

func (h *Storefront) ToggleFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.toggle_favorite")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		l.Warn("toggle_favorite_failed", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	page := ui.NewPage()
	page.SetValue(c.FormValue("nome"))
	h.productList(c, page).ToggleFavorite(ctx, id)

	if len(page.State().Alerts) > 0 {
		// No reload happened; show the listing the user was looking at.
		h.productList(c, page).Load(ctx, page.Value())
	}
	return renderPage(c, "produtos.html", page, nil)
}

func (h *Storefront) categories(c echo.Context, page *ui.Page) {
	(&pages.CategoryLoader{
		API:      h.API,
		Select:   page,
		Messages: page,
		Logger:   logging.FromContext(c.Request().Context()),
	}).Load(c.Request().Context())
}

func (h *Storefront) CreateForm(c echo.Context) error {
	page := ui.NewPage()
	h.categories(c, page)
	return renderPage(c, "criar_produto.html", page, nil)
}

func (h *Storefront) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.create_product")

	draft := pages.ProductDraft{
		Nome:      c.FormValue("nome"),
		Marca:     c.FormValue("marca"),
		Preco:     c.FormValue("preco"),
		Descricao: c.FormValue("descricao"),
		Categoria: c.FormValue("categoria"),
	}

	if fh, err := c.FormFile("imagem"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			l.Warn("create_product_failed", "status", 400, "reason", "cannot open upload", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
		}
		defer f.Close()
		draft.Imagem = &apiclient.File{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Content:     f,
		}
	}

	page := ui.NewPage()
	h.categories(c, page)
	(&pages.ProductCreator{
		API:       h.API,
		Tokens:    session.FromRequest(c.Request()),
		Messages:  page,
		Navigator: page,
		Events:    h.Events,
		Logger:    l,
	}).Submit(ctx, draft)

	return renderPage(c, "criar_produto.html", page, url.Values{
		"nome":      {draft.Nome},
		"marca":     {draft.Marca},
		"preco":     {draft.Preco},
		"descricao": {draft.Descricao},
		"categoria": {draft.Categoria},
	})
}

func (h *Storefront) ForgotForm(c echo.Context) error {
	page := ui.NewPage()
	page.SetLabel(resetRequestIdle)
	return renderPage(c, "esqueci_senha.html", page, nil)
}

func (h *Storefront) RequestReset(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.FormValue("email")

	page := ui.NewPage()
	(&pages.ResetRequest{
		API:      h.API,
		Messages: page,
		Button:   page,
		Logger:   logging.FromContext(ctx),
	}).Submit(ctx, email)

	return renderPage(c, "esqueci_senha.html", page, url.Values{"email": {email}})
}

func (h *Storefront) resetConfirm(c echo.Context, page *ui.Page) *pages.ResetConfirm {
	page.SetLabel(resetConfirmIdle)
	return pages.NewResetConfirm(h.API, c.Request().URL.Query(), page, page, page, logging.FromContext(c.Request().Context()))
}

func (h *Storefront) ResetForm(c echo.Context) error {
	page := ui.NewPage()
	h.resetConfirm(c, page)
	return renderPage(c, "reset_senha.html", page, nil)
}

func (h *Storefront) ConfirmReset(c echo.Context) error {
	page := ui.NewPage()
	h.resetConfirm(c, page).Submit(c.Request().Context(), c.FormValue("nova_senha"))
	return renderPage(c, "reset_senha.html", page, nil)
}
