// Package pages holds the storefront's page controllers. Each controller is wired to the views
// of one page and talks to the catalog API; none of them calls another.
package pages

import (
	"context"
	"log/slog"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
)

const (
	ListingPage = "produtos.html"
	LoginPage   = "login.html"
)

type API interface {
	Fetch(ctx context.Context, r apiclient.Request) apiclient.Result
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func publish(ctx context.Context, p events.Publisher, l *slog.Logger, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		l.Warn("event_publish_failed", "type", e.Type, "error", err)
	}
}
