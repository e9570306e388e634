// Package terminal runs the product listing in a line-oriented terminal session.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

// Console prints view updates as lines. It implements the views the listing and category
// controllers need.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	search string
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Show(text string, kind ui.MessageKind) {
	c.printf("[%s] %s\n", kind, text)
}

func (c *Console) Hide() {}

func (c *Console) Alert(text string) {
	c.printf("! %s\n", text)
}

func (c *Console) SetOptions(opts []ui.Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range opts {
		if o.Value == "" {
			fmt.Fprintf(c.out, "%s\n", o.Label)
			continue
		}
		fmt.Fprintf(c.out, "  %s) %s\n", o.Value, o.Label)
	}
}

func (c *Console) Clear() {}

func (c *Console) SetLoading(loading bool) {
	if loading {
		c.printf("Carregando...\n")
	}
}

func (c *Console) ShowCards(cards []ui.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, card := range cards {
		fmt.Fprintf(c.out, "#%d %s %s [%s] R$ %s\n", card.ID, card.Icon(), card.Name, card.Category, card.Price)
		if card.Description != "" {
			fmt.Fprintf(c.out, "    %s\n", card.Description)
		}
	}
}

func (c *Console) ShowNotice(text string) {
	c.printf("%s\n", text)
}

func (c *Console) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

func (c *Console) SetValue(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = v
}
