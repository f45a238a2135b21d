package dto

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// OwnerSessionRequest body para POST /api/owners/session.
// Lat/Lon son punteros para distinguir "ausente" de 0.
type OwnerSessionRequest struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// OwnerSessionResponse farmacia del dueño (nueva o existente) y su token.
// Warning viene cuando la farmacia quedó registrada en memoria pero no pudo guardarse.
type OwnerSessionResponse struct {
	Pharmacy  entity.Pharmacy `json:"pharmacy"`
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expires_in"` // segundos
	Warning   string          `json:"warning,omitempty"`
}

// PharmacyListResponse respuesta de GET /api/pharmacies.
type PharmacyListResponse struct {
	Total      int               `json:"total"`
	Pharmacies []entity.Pharmacy `json:"pharmacies"`
}
