package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// priceListPrompt define el rol del modelo y el formato de salida.
const priceListPrompt = `Eres un asistente que digitaliza listas de precios de farmacias.
Recibes la foto de una lista de precios escrita a mano o impresa.
Devuelve ÚNICAMENTE un objeto JSON (sin markdown ni texto adicional) con esta estructura exacta:
{
  "items": [
    {"medicineName": "<nombre tal como aparece, incluida la dosis>", "price": <número>, "stock": "<In Stock | Low Stock | Out of Stock>"}
  ]
}

Reglas:
- medicineName: copia el nombre del medicamento sin traducirlo ni corregirlo.
- price: precio por tira/unidad como número, sin símbolo de moneda.
- stock: omítelo si la lista no indica disponibilidad.
- Ignora encabezados, totales y filas ilegibles.`

// maxResponseBytes límite de lectura de la respuesta HTTP del modelo.
const maxResponseBytes = 256 * 1024

type priceListPayload struct {
	Items []struct {
		MedicineName string      `json:"medicineName"`
		Price        json.Number `json:"price"`
		Stock        string      `json:"stock"`
	} `json:"items"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// parsePriceList convierte el texto del modelo en ítems. Los precios ilegibles se descartan;
// los estados de stock se normalizan (vacío si no se reconocen).
func parsePriceList(rawText string) ([]entity.PriceListItem, error) {
	clean := extractJSON(rawText)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var payload priceListPayload
	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("AI: parsear lista de precios: %w (JSON extraído: %s)", err, clean)
	}

	items := make([]entity.PriceListItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		name := strings.TrimSpace(it.MedicineName)
		if name == "" {
			continue
		}
		price, err := decimal.NewFromString(it.Price.String())
		if err != nil {
			continue
		}
		items = append(items, entity.PriceListItem{
			MedicineName: name,
			Price:        price,
			Stock:        normalizeStock(it.Stock),
		})
	}
	return items, nil
}

// normalizeStock acepta variantes habituales ("in stock", "low", "agotado").
func normalizeStock(raw string) entity.StockStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in stock", "instock", "available", "disponible":
		return entity.InStock
	case "low stock", "lowstock", "low", "pocas unidades":
		return entity.LowStock
	case "out of stock", "outofstock", "out", "agotado":
		return entity.OutOfStock
	}
	return ""
}

// extractJSON quita bloques ```json … ``` y devuelve el primer { … } del texto.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
