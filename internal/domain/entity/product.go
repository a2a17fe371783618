package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una especie/variedad de fruta con su stock en kilos.
// StockKg es un acumulado cacheado; cada movimiento aplica deltas con bloqueo de fila.
type Product struct {
	ID        string
	Name      string // especie (ej. "Manzana")
	Variety   string // variedad (ej. "Fuji")
	StockKg   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
