package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cacaneves/dev-sistema-codigo/internal/pages"
	"github.com/cacaneves/dev-sistema-codigo/internal/session"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

var ErrQuit = errors.New("terminal: quit")

// TokenWriter stores the access token typed with ":token".
type TokenWriter interface {
	Put(ctx context.Context, key, value string) error
}

// Shell feeds each input line to the listing as a search keystroke. Lines starting with ':' are
// commands.
type Shell struct {
	List       *pages.ProductList
	Categories *pages.CategoryLoader
	Console    *Console
	Tokens     TokenWriter
	Logger     *slog.Logger
}

const help = `comandos:
  <texto>        busca produtos pelo nome
  :fav <id>      marca ou desmarca um favorito
  :favoritos     lista seus favoritos
  :categorias    lista as categorias
  :token <valor> guarda o token de acesso
  :sair          encerra`

func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	defer func() {
		if s.List.Debounce != nil {
			s.List.Debounce.Stop()
		}
	}()

	s.List.Load(ctx, "")

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Handle(ctx, sc.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
	return sc.Err()
}

// Handle processes one input line. It returns ErrQuit for ":sair".
func (s *Shell) Handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, ":") {
		s.List.Input(ctx, line)
		return nil
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "sair":
		return ErrQuit
	case "fav":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			s.Console.Alert("uso: :fav <id>")
			return nil
		}
		s.List.ToggleFavorite(ctx, id)
	case "favoritos":
		s.List.LoadFavorites(ctx)
	case "categorias":
		if s.Categories != nil {
			s.Categories.Load(ctx)
		}
	case "token":
		if s.Tokens == nil || arg == "" {
			s.Console.Alert("uso: :token <valor>")
			return nil
		}
		if err := s.Tokens.Put(ctx, session.AccessTokenKey, arg); err != nil {
			s.logger().Error("token_store_failed", "error", err)
			s.Console.Alert("Não foi possível salvar o token.")
			return nil
		}
		s.Console.Show("Token salvo.", ui.Info)
	case "ajuda":
		s.Console.ShowNotice(help)
	default:
		s.Console.Alert("comando desconhecido: " + cmd + " (:ajuda)")
	}
	return nil
}

func (s *Shell) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
