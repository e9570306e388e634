package pages

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

const ResetRedirectDelay = 2 * time.Second

const (
	requestSending = "Enviando..."
	requestIdle    = "Enviar Link"
	requestSuccess = "Verifique seu e-mail (ou o console do servidor) para continuar."
	requestFailed  = "E-mail não encontrado ou erro no servidor."

	confirmInvalidLink = "Link inválido ou incompleto. Solicite novamente."
	confirmSending     = "Atualizando senha..."
	confirmSuccess     = "Senha alterada com sucesso! Redirecionando..."
	confirmBadToken    = "Link expirado ou inválido."
	confirmFailed      = "Erro ao alterar senha."
)

type ResetRequest struct {
	API      API
	Messages ui.Messenger
	Button   ui.Button
	Logger   *slog.Logger
}

func (r *ResetRequest) Submit(ctx context.Context, email string) {
	l := loggerOr(r.Logger).With("controller", "recovery.request")

	r.Messages.Hide()
	r.Button.SetDisabled(true)
	r.Button.SetLabel(requestSending)

	res := r.API.Fetch(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/password-reset/solicitar/",
		JSON:   map[string]string{"email": email},
	})

	r.Button.SetDisabled(false)
	r.Button.SetLabel(requestIdle)

	if !res.OK {
		l.Warn("reset_request_failed", "status", res.Status, "error", res.Err)
		r.Messages.Show(RequestErrorMessage(res.Data), ui.Error)
		return
	}
	r.Messages.Show(requestSuccess, ui.Info)
}

func RequestErrorMessage(data json.RawMessage) string {
	if msg, ok := apiclient.ParseErrorBody(data).Message("erro"); ok {
		return msg
	}
	return requestFailed
}

// ResetConfirm is bound to the uid and token of the link that opened the page.
type ResetConfirm struct {
	api    API
	msg    ui.Messenger
	btn    ui.Button
	nav    ui.Navigator
	logger *slog.Logger

	uid   string
	token string
	valid bool
}

// NewResetConfirm reads uid and token from the page query. A link missing either one
// disables the form for good.
func NewResetConfirm(api API, query url.Values, msg ui.Messenger, btn ui.Button, nav ui.Navigator, logger *slog.Logger) *ResetConfirm {
	c := &ResetConfirm{
		api:    api,
		msg:    msg,
		btn:    btn,
		nav:    nav,
		logger: loggerOr(logger).With("controller", "recovery.confirm"),
		uid:    query.Get("uid"),
		token:  query.Get("token"),
	}
	c.valid = c.uid != "" && c.token != ""
	if !c.valid {
		c.btn.SetDisabled(true)
		c.msg.Show(confirmInvalidLink, ui.Error)
	}
	return c
}

func (c *ResetConfirm) Valid() bool { return c.valid }

func (c *ResetConfirm) Submit(ctx context.Context, novaSenha string) {
	if !c.valid {
		return
	}

	c.msg.Show(confirmSending, ui.Info)

	res := c.api.Fetch(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/password-reset/confirmar/",
		JSON: map[string]string{
			"uidb64":     c.uid,
			"token":      c.token,
			"nova_senha": novaSenha,
		},
	})

	if !res.OK {
		c.logger.Warn("reset_confirm_failed", "status", res.Status, "error", res.Err)
		c.msg.Show(ConfirmErrorMessage(res.Data), ui.Error)
		return
	}

	c.msg.Show(confirmSuccess, ui.Success)
	c.nav.Redirect(LoginPage, ResetRedirectDelay)
}

// ConfirmErrorMessage picks token, then nova_senha, then detail, then the generic text.
func ConfirmErrorMessage(data json.RawMessage) string {
	body := apiclient.ParseErrorBody(data)
	if body.Present("token") {
		return confirmBadToken
	}
	if msg, ok := body.Message("nova_senha"); ok {
		return msg
	}
	if msg, ok := body.Message("detail"); ok {
		return msg
	}
	return confirmFailed
}
