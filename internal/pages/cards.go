package pages

import (
	"github.com/cacaneves/dev-sistema-codigo/internal/models"
	"github.com/cacaneves/dev-sistema-codigo/internal/ui"
)

const (
	PlaceholderImage = "https://placehold.co/600x400?text=Sem+Foto"
	DefaultCategory  = "Geral"
)

func CardFor(p models.Product) ui.Card {
	img := p.Imagem
	if img == "" {
		img = PlaceholderImage
	}
	cat := p.CategoriaNome
	if cat == "" {
		cat = DefaultCategory
	}
	return ui.Card{
		ID:          p.ID,
		ImageURL:    img,
		Category:    cat,
		Name:        p.Nome,
		Description: p.Descricao,
		Price:       p.Preco.StringFixed(2),
		Favorite:    p.IsFavorito,
	}
}

func Cards(ps []models.Product) []ui.Card {
	out := make([]ui.Card, 0, len(ps))
	for _, p := range ps {
		out = append(out, CardFor(p))
	}
	return out
}
