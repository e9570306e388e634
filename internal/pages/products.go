package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
	"github.com/cacaneves/dev-sistema-codigo/internal/models"
	"github.com/cacaneves/dev-sistema-codigo/internal/session"
	"github.com/cacaneves/dev-sistema-codigo/internal/timer"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

const (
	productsPath  = "/produtos/"
	favoritesPath = "/produtos/meus-favoritos/"
)

const (
	productsEmpty      = "Nenhum produto encontrado."
	productsFailed     = "Erro ao carregar produtos."
	favoritesEmpty     = "Você ainda não tem favoritos."
	favoritesFailed    = "Erro ao carregar favoritos."
	favoriteNeedsLogin = "Faça login para favoritar produtos!"
	favoritesNeedLogin = "Faça login para ver seus favoritos!"
	favoriteFailed     = "Erro ao favoritar."
)

// ProductList drives the listing page. Every load takes a new generation and only the
// response of the newest generation reaches the board.
type ProductList struct {
	API      API
	Tokens   session.Store
	Board    ui.ProductBoard
	Search   ui.SearchBox
	Alerts   ui.Alerter
	Debounce *timer.Debouncer
	Events   events.Publisher
	Logger   *slog.Logger

	mu  sync.Mutex
	gen uint64
}

func (p *ProductList) Load(ctx context.Context, term string) {
	l := loggerOr(p.Logger).With("controller", "products.load")

	path := productsPath
	if term != "" {
		path += "?nome=" + url.QueryEscape(term)
	}

	gen := p.begin()
	res := p.API.Fetch(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Token:  session.AccessToken(ctx, p.Tokens),
	})
	p.render(gen, res, productsEmpty, productsFailed, l)
}

// Input records a search keystroke and loads once the debounce window stays quiet.
func (p *ProductList) Input(ctx context.Context, term string) {
	p.Search.SetValue(term)
	if p.Debounce == nil {
		p.Load(ctx, term)
		return
	}
	p.Debounce.Trigger(func() { p.Load(context.WithoutCancel(ctx), term) })
}

func (p *ProductList) ToggleFavorite(ctx context.Context, id int64) {
	l := loggerOr(p.Logger).With("controller", "products.favorite", "product_id", id)

	token := session.AccessToken(ctx, p.Tokens)
	if token == "" {
		p.Alerts.Alert(favoriteNeedsLogin)
		return
	}

	res := p.API.Fetch(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s%d/favoritar/", productsPath, id),
		JSON:   struct{}{},
		Token:  token,
	})
	if !res.OK {
		l.Warn("favorite_toggle_failed", "status", res.Status, "error", res.Err)
		p.Alerts.Alert(favoriteFailed)
		return
	}

	p.Load(ctx, p.Search.Value())

	var body struct {
		Favoritado *bool `json:"favoritado"`
	}
	_ = json.Unmarshal(res.Data, &body)
	publish(ctx, p.Events, l, events.Event{Type: events.TypeFavoriteToggled, ProductID: id, Favorited: body.Favoritado})
}

func (p *ProductList) LoadFavorites(ctx context.Context) {
	l := loggerOr(p.Logger).With("controller", "products.favorites")

	token := session.AccessToken(ctx, p.Tokens)
	if token == "" {
		p.Alerts.Alert(favoritesNeedLogin)
		return
	}

	// A pending search would otherwise replace the favorites once it fires.
	if p.Debounce != nil {
		p.Debounce.Stop()
	}

	gen := p.begin()
	p.Search.SetValue("")
	res := p.API.Fetch(ctx, apiclient.Request{Method: http.MethodGet, Path: favoritesPath, Token: token})
	p.render(gen, res, favoritesEmpty, favoritesFailed, l)
}

func (p *ProductList) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.Board.Clear()
	p.Board.SetLoading(true)
	return p.gen
}

func (p *ProductList) render(gen uint64, res apiclient.Result, empty, failed string, l *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		l.Debug("stale_response_discarded", "generation", gen, "current", p.gen)
		return
	}
	p.Board.SetLoading(false)

	if !res.OK {
		l.Warn("products_load_failed", "status", res.Status, "error", res.Err)
		p.Board.ShowNotice(failed)
		return
	}
	products, err := apiclient.DecodeList[models.Product](res.Data)
	if err != nil {
		l.Warn("products_load_failed", "status", res.Status, "reason", "unexpected body", "error", err)
		p.Board.ShowNotice(failed)
		return
	}
	if len(products) == 0 {
		p.Board.ShowNotice(empty)
		return
	}
	p.Board.ShowCards(Cards(products))
	l.Debug("products_load_success", "count", len(products))
}
