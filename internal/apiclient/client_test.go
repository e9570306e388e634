package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cacaneves/dev-sistema-codigo/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", time.Second, logging.Discard())
}

func TestFetch_GetWithBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/produtos/", r.URL.Path)
		assert.Equal(t, "caneca", r.URL.Query().Get("nome"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"nome":"Caneca"}]`)
	})

	res := c.Fetch(context.Background(), Request{Path: "/produtos/?nome=caneca", Token: "tok-1"})
	require.NoError(t, res.Err)
	require.True(t, res.OK)
	require.Equal(t, http.StatusOK, res.Status)
	require.JSONEq(t, `[{"id":1,"nome":"Caneca"}]`, string(res.Data))
}

func TestFetch_NoTokenNoAuthorizationHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	res := c.Fetch(context.Background(), Request{Path: "/categorias/"})
	require.True(t, res.OK)
	require.Nil(t, res.Data)
}

func TestFetch_JSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string]string{"email": "ana@example.com"}, got)
		_, _ = io.WriteString(w, `{"mensagem":"ok"}`)
	})

	res := c.Fetch(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/password-reset/solicitar/",
		JSON:   map[string]string{"email": "ana@example.com"},
	})
	require.True(t, res.OK)
}

func TestFetch_MultipartBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Caneca", r.FormValue("nome"))
		assert.Equal(t, "true", r.FormValue("ativo"))

		f, hdr, err := r.FormFile("imagem")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "caneca.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		b, _ := io.ReadAll(f)
		assert.Equal(t, "PNGDATA", string(b))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":7}`)
	})

	form := NewMultipart().Add("nome", "Caneca").Add("ativo", "true").Attach(File{
		Field:       "imagem",
		Filename:    "caneca.png",
		ContentType: "image/png",
		Content:     strings.NewReader("PNGDATA"),
	})
	res := c.Fetch(context.Background(), Request{Method: http.MethodPost, Path: "/produtos/", Form: form})
	require.True(t, res.OK)
	require.Equal(t, http.StatusCreated, res.Status)
}

func TestFetch_ErrorStatusKeepsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"preco":["must be positive"]}`)
	})

	res := c.Fetch(context.Background(), Request{Method: http.MethodPost, Path: "/produtos/"})
	require.NoError(t, res.Err)
	require.False(t, res.OK)
	require.Equal(t, http.StatusBadRequest, res.Status)
	require.JSONEq(t, `{"preco":["must be positive"]}`, string(res.Data))
}

func TestFetch_NonJSONBodyDropped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>Server Error</html>")
	})

	res := c.Fetch(context.Background(), Request{Path: "/produtos/"})
	require.False(t, res.OK)
	require.Nil(t, res.Data)
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, logging.Discard())
	res := c.Fetch(context.Background(), Request{Path: "/categorias/"})
	require.False(t, res.OK)
	require.Zero(t, res.Status)
	require.ErrorIs(t, res.Err, ErrTransport)
}

func TestFetch_ForwardsRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rid-42", r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `[]`)
	})

	res := c.Fetch(WithRequestID(context.Background(), "rid-42"), Request{Path: "/categorias/"})
	require.True(t, res.OK)
}

func TestFetch_UnencodableJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	res := c.Fetch(context.Background(), Request{Method: http.MethodPost, Path: "/x/", JSON: map[string]any{"c": make(chan int)}})
	require.ErrorIs(t, res.Err, ErrEncode)
	require.False(t, res.OK)
}

func TestFetch_BodyOverLimit(t *testing.T) {
	body := `[{"id":1,"nome":"Caneca"},{"id":2,"nome":"Prato"}]`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})

	res := c.WithMaxBody(int64(len(body))).Fetch(context.Background(), Request{Path: "/produtos/"})
	require.NoError(t, res.Err)
	require.True(t, res.OK)

	res = c.WithMaxBody(int64(len(body)-1)).Fetch(context.Background(), Request{Path: "/produtos/"})
	require.ErrorIs(t, res.Err, ErrBodyTooLarge)
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Nil(t, res.Data)
}
