package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cacaneves/dev-sistema-codigo/internal/middleware/csrf"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	t *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// view is what every page template receives.
type view struct {
	ui.PageState
	CSRF   string
	Action string
	Values url.Values
}

// renderPage writes the page state. A pending redirect becomes a Refresh header so the browser
// navigates once the delay has passed.
func renderPage(c echo.Context, name string, page *ui.Page, values url.Values) error {
	st := page.State()
	if st.Redirect != nil {
		c.Response().Header().Set("Refresh", refreshHeader(*st.Redirect))
	}
	action := c.Request().URL.Path
	if q := c.QueryString(); q != "" {
		action += "?" + q
	}
	return c.Render(http.StatusOK, name, view{
		PageState: st,
		CSRF:      csrf.Token(c),
		Action:    action,
		Values:    values,
	})
}

func refreshHeader(r ui.RedirectTo) string {
	return strconv.FormatFloat(r.After.Seconds(), 'f', -1, 64) + "; url=" + r.Page
}
