package pages

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   []apiclient.Request
	respond func(r apiclient.Request) apiclient.Result
}

func (f *fakeAPI) Fetch(_ context.Context, r apiclient.Request) apiclient.Result {
	f.mu.Lock()
	f.calls = append(f.calls, r)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return ok(`[]`)
	}
	return respond(r)
}

func (f *fakeAPI) Calls() []apiclient.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiclient.Request(nil), f.calls...)
}

func ok(body string) apiclient.Result {
	return apiclient.Result{OK: true, Status: 200, Data: json.RawMessage(body)}
}

func failed(status int, body string) apiclient.Result {
	res := apiclient.Result{Status: status}
	if body != "" {
		res.Data = json.RawMessage(body)
	}
	return res
}

func transportError() apiclient.Result {
	return apiclient.Result{Err: errors.New("dial tcp: connection refused")}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *fakePublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}
