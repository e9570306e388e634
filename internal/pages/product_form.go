package pages

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
	"github.com/cacaneves/dev-sistema-codigo/internal/models"
	"github.com/cacaneves/dev-sistema-codigo/internal/session"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

const CreateRedirectDelay = 1500 * time.Millisecond

const (
	createNoCategory = "Por favor, selecione uma categoria."
	createSending    = "Enviando dados..."
	createSuccess    = "Produto cadastrado com sucesso!"
	createFailed     = "Erro ao cadastrar produto."
)

// ProductDraft is what the creation form holds at submit time. Imagem is optional.
type ProductDraft struct {
	Nome      string
	Marca     string
	Preco     string
	Descricao string
	Categoria string
	Imagem    *apiclient.File
}

type ProductCreator struct {
	API       API
	Tokens    session.Store
	Messages  ui.Messenger
	Navigator ui.Navigator
	Events    events.Publisher
	Logger    *slog.Logger
}

func (c *ProductCreator) Submit(ctx context.Context, d ProductDraft) {
	l := loggerOr(c.Logger).With("controller", "products.create")

	if d.Categoria == "" {
		c.Messages.Show(createNoCategory, ui.Error)
		return
	}

	c.Messages.Show(createSending, ui.Info)

	form := apiclient.NewMultipart().
		Add("nome", d.Nome).
		Add("marca", d.Marca).
		Add("preco", d.Preco).
		Add("descricao", d.Descricao).
		Add("categoria", d.Categoria).
		Add("ativo", "true")
	if d.Imagem != nil && d.Imagem.Content != nil {
		img := *d.Imagem
		img.Field = "imagem"
		form.Attach(img)
	}

	res := c.API.Fetch(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/produtos/",
		Form:   form,
		Token:  session.AccessToken(ctx, c.Tokens),
	})

	if !res.OK {
		l.Error("product_create_failed", "status", res.Status, "body", string(res.Data), "error", res.Err)
		c.Messages.Show(CreationErrorMessage(res.Data), ui.Error)
		return
	}

	c.Messages.Show(createSuccess, ui.Success)
	c.Navigator.Redirect(ListingPage, CreateRedirectDelay)

	var created models.Product
	_ = json.Unmarshal(res.Data, &created)
	publish(ctx, c.Events, l, events.Event{Type: events.TypeProductCreated, ProductID: created.ID, Name: d.Nome})
	l.Info("product_create_success", "product_id", created.ID)
}

// CreationErrorMessage renders the first field error of a validation body as "FIELD: message".
func CreationErrorMessage(data json.RawMessage) string {
	first, ok := apiclient.ParseErrorBody(data).First()
	if !ok {
		return createFailed
	}
	return strings.ToUpper(first.Field) + ": " + first.Messages[0]
}
