package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var apiSecret = []byte("catalog-test-secret")

func mintToken(t *testing.T, userID int) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString(apiSecret)
	require.NoError(t, err)
	return s
}

type createdProduct struct {
	Fields    map[string]string
	Order     []string
	ImageName string
	Image     string
}

// fakeCatalog mimics the catalog API closely enough for the storefront pages.
type fakeCatalog struct {
	mu        sync.Mutex
	favorites map[int64]bool
	searches  []string
	created   []createdProduct
	requestID []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{favorites: map[int64]bool{}}
}

func (f *fakeCatalog) authorized(r *http.Request) bool {
	h := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return false
	}
	_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return apiSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeCatalog) product(id int64, nome string) map[string]any {
	return map[string]any{
		"id": id, "nome": nome, "marca": "Marca", "preco": "10.5", "descricao": "Desc " + nome,
		"categoria": 1, "categoria_nome": "Casa", "imagem": nil, "is_favorito": f.favorites[id],
	}
}

func (f *fakeCatalog) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /categorias/{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"count": 2, "next": nil, "previous": nil,
			"results": []map[string]any{{"id": 1, "nome": "Casa"}, {"id": 2, "nome": "Livros"}},
		})
	})

	mux.HandleFunc("GET /produtos/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.searches = append(f.searches, r.URL.Query().Get("nome"))
		f.requestID = append(f.requestID, r.Header.Get("X-Request-ID"))
		if r.URL.Query().Get("nome") == "nada" {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, []any{f.product(1, "Abajur"), f.product(2, "Livro")})
	})

	mux.HandleFunc("GET /produtos/meus-favoritos/{$}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token inválido."})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []any{}
		for id, fav := range f.favorites {
			if fav {
				out = append(out, f.product(id, "Favorito "+strconv.FormatInt(id, 10)))
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": out})
	})

	mux.HandleFunc("POST /produtos/{id}/favoritar/{$}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token inválido."})
			return
		}
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id > 100 {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Não encontrado."})
			return
		}
		f.mu.Lock()
		f.favorites[id] = !f.favorites[id]
		fav := f.favorites[id]
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"favoritado": fav})
	})

	mux.HandleFunc("POST /produtos/{$}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "As credenciais de autenticação não foram fornecidas."})
			return
		}
		mr, err := r.MultipartReader()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		cp := createdProduct{Fields: map[string]string{}}
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
				return
			}
			b, _ := io.ReadAll(part)
			if part.FileName() != "" {
				cp.ImageName, cp.Image = part.FileName(), string(b)
				continue
			}
			cp.Order = append(cp.Order, part.FormName())
			cp.Fields[part.FormName()] = string(b)
		}
		if cp.Fields["preco"] == "abc" {
			writeJSON(w, http.StatusBadRequest, json.RawMessage(`{"preco":["Um número válido é necessário."],"nome":["ok"]}`))
			return
		}
		f.mu.Lock()
		f.created = append(f.created, cp)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"id": 99, "nome": cp.Fields["nome"]})
	})

	mux.HandleFunc("POST /password-reset/solicitar/{$}", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "ana@example.com" {
			writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Usuário com este e-mail não existe."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"mensagem": "E-mail enviado."})
	})

	mux.HandleFunc("POST /password-reset/confirmar/{$}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UID       string `json:"uidb64"`
			Token     string `json:"token"`
			NovaSenha string `json:"nova_senha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch {
		case body.Token != "good":
			writeJSON(w, http.StatusBadRequest, map[string]any{"token": []string{"Token inválido ou expirado."}})
		case len(body.NovaSenha) < 8:
			writeJSON(w, http.StatusBadRequest, map[string]any{"nova_senha": []string{"Esta senha é muito curta."}})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Senha alterada com sucesso!"})
		}
	})

	return mux
}
