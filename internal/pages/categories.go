package pages

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/models"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

const (
	categoriesLoading     = "Carregando..."
	categoriesPlaceholder = "Selecione uma categoria..."
	categoriesFailed      = "Erro ao carregar categorias"
	categoriesFailedMsg   = "Não foi possível carregar as categorias."
)

type CategoryLoader struct {
	API      API
	Select   ui.Select
	Messages ui.Messenger
	Logger   *slog.Logger
}

func (c *CategoryLoader) Load(ctx context.Context) {
	l := loggerOr(c.Logger).With("controller", "categories.load")

	c.Select.SetOptions([]ui.Option{{Label: categoriesLoading}})

	res := c.API.Fetch(ctx, apiclient.Request{Method: http.MethodGet, Path: "/categorias/"})
	if !res.OK {
		l.Warn("categories_load_failed", "status", res.Status, "error", res.Err)
		c.fail()
		return
	}

	cats, err := apiclient.DecodeList[models.Category](res.Data)
	if err != nil {
		l.Warn("categories_load_failed", "status", res.Status, "reason", "unexpected body", "error", err)
		c.fail()
		return
	}

	c.Select.SetOptions(CategoryOptions(cats))
	l.Debug("categories_load_success", "count", len(cats))
}

func (c *CategoryLoader) fail() {
	c.Select.SetOptions([]ui.Option{{Label: categoriesFailed}})
	c.Messages.Show(categoriesFailedMsg, ui.Error)
}

// CategoryOptions puts the empty placeholder first, then one option per category.
func CategoryOptions(cats []models.Category) []ui.Option {
	opts := make([]ui.Option, 0, len(cats)+1)
	opts = append(opts, ui.Option{Value: "", Label: categoriesPlaceholder})
	for _, cat := range cats {
		opts = append(opts, ui.Option{Value: strconv.FormatInt(cat.ID, 10), Label: cat.Nome})
	}
	return opts
}
