package dto

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// SearchQuery parámetros de GET /api/search.
type SearchQuery struct {
	Medicine string `query:"medicine"`
	Lat      string `query:"lat"`
	Lon      string `query:"lon"`
}

// SearchResponse resultados ordenados por distancia (máximo 10, solo In Stock).
type SearchResponse struct {
	Medicine string                `json:"medicine"`
	Count    int                   `json:"count"`
	Results  []entity.SearchResult `json:"results"`
}
