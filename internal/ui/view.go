// Package ui declares what the page controllers need from a page. Hosts implement these
// interfaces; Page is the in-memory implementation the web host renders from.
package ui

import "time"

type MessageKind string

const (
	Info    MessageKind = "info"
	Success MessageKind = "sucesso"
	Error   MessageKind = "erro"
)

type Messenger interface {
	Show(text string, kind MessageKind)
	Hide()
}

type Alerter interface {
	Alert(text string)
}

// Navigator moves the user to another page once after has elapsed.
type Navigator interface {
	Redirect(page string, after time.Duration)
}

type Option struct {
	Value string
	Label string
}

type Select interface {
	SetOptions(opts []Option)
}

type Card struct {
	ID          int64
	ImageURL    string
	Category    string
	Name        string
	Description string
	Price       string
	Favorite    bool
}

func (c Card) Icon() string {
	if c.Favorite {
		return "❤️"
	}
	return "🤍"
}

type ProductBoard interface {
	Clear()
	SetLoading(loading bool)
	ShowCards(cards []Card)
	ShowNotice(text string)
}

type SearchBox interface {
	Value() string
	SetValue(v string)
}

type Button interface {
	SetDisabled(disabled bool)
	SetLabel(label string)
}
