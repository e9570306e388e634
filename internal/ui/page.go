package ui

import (
	"sync"
	"time"
)

type Message struct {
	Text    string
	Kind    MessageKind
	Visible bool
}

type RedirectTo struct {
	Page  string
	After time.Duration
}

type ButtonState struct {
	Disabled bool
	Label    string
}

// PageState is a copy of everything a controller has put on a Page.
type PageState struct {
	Message  Message
	Alerts   []string
	Redirect *RedirectTo
	Options  []Option
	Loading  bool
	Cards    []Card
	Notice   string
	Search   string
	Button   ButtonState
}

// Page records controller output. It implements every view interface in this package and is
// safe for use from timer goroutines.
type Page struct {
	mu sync.Mutex
	st PageState
}

func NewPage() *Page {
	return &Page{}
}

func (p *Page) Show(text string, kind MessageKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Message = Message{Text: text, Kind: kind, Visible: true}
}

func (p *Page) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Message.Visible = false
}

func (p *Page) Alert(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Alerts = append(p.st.Alerts, text)
}

func (p *Page) Redirect(page string, after time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Redirect = &RedirectTo{Page: page, After: after}
}

func (p *Page) SetOptions(opts []Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Options = append([]Option(nil), opts...)
}

func (p *Page) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Cards = nil
	p.st.Notice = ""
}

func (p *Page) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Loading = loading
}

func (p *Page) ShowCards(cards []Card) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Cards = append([]Card(nil), cards...)
	p.st.Notice = ""
}

func (p *Page) ShowNotice(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Cards = nil
	p.st.Notice = text
}

func (p *Page) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.Search
}

func (p *Page) SetValue(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Search = v
}

func (p *Page) SetDisabled(disabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Button.Disabled = disabled
}

func (p *Page) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Button.Label = label
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.st
	st.Alerts = append([]string(nil), p.st.Alerts...)
	st.Options = append([]Option(nil), p.st.Options...)
	st.Cards = append([]Card(nil), p.st.Cards...)
	if p.st.Redirect != nil {
		r := *p.st.Redirect
		st.Redirect = &r
	}
	return st
}
