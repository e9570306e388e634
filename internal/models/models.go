package models

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Product mirrors the catalog API representation. Preco arrives as a decimal string ("19.90")
// or a number depending on the server's serializer settings; both decode.
type Product struct {
	ID            int64           `json:"id"`
	Nome          string          `json:"nome"`
	Marca         string          `json:"marca"`
	Preco         decimal.Decimal `json:"preco"`
	Descricao     string          `json:"descricao"`
	Categoria     *int64          `json:"categoria"`
	CategoriaNome string          `json:"categoria_nome"`
	Imagem        string          `json:"imagem"`
	IsFavorito    bool            `json:"is_favorito"`
}
