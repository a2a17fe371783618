package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de efecto registrados por los constructores de documentos.
const (
	EffectProductStock     = "product_stock"     // Target=productID, Delta en kg
	EffectContainerEmpty   = "container_empty"   // Target=containerTypeID, Delta en unidades
	EffectContainerFull    = "container_full"    // Target=containerTypeID, Delta en unidades
	EffectContainerDebt    = "container_debt"    // Target=containerTypeID, Aux=partyID, Delta en unidades
	EffectTreasuryBalance  = "treasury_balance"  // Target=accountID, Delta en dinero
	EffectCheckStatus      = "check_status"      // Target=checkID, PrevValue=estado anterior
	EffectOutflowCollected = "outflow_collected" // Target=outflowID, Delta=monto aplicado
)

// DocumentEffect es una entrada del registro de efectos de un documento.
// Cada constructor (ingreso, salida, cobranza, pago) graba, en orden, todo
// efecto colateral que aplicó; la anulación reproduce la lista invertida en
// lugar de rederivar los deltas desde el documento.
type DocumentEffect struct {
	ID        string
	DocType   string
	DocID     string
	Seq       int
	Type      string
	TargetID  string
	AuxID     string
	Delta     decimal.Decimal
	PrevValue string
	CreatedAt time.Time
}

// EffectRecorder acumula los efectos de un documento en orden de aplicación.
// Los constructores lo llenan a medida que mutan y lo persisten en batch.
type EffectRecorder struct {
	docType string
	docID   string
	now     time.Time
	effects []*DocumentEffect
}

// NewEffectRecorder crea un registrador para el documento.
func NewEffectRecorder(docType, docID string, now time.Time) *EffectRecorder {
	return &EffectRecorder{docType: docType, docID: docID, now: now}
}

// Add registra un efecto con el siguiente número de secuencia.
func (r *EffectRecorder) Add(effectType, targetID, auxID string, delta decimal.Decimal, prevValue string) {
	r.effects = append(r.effects, &DocumentEffect{
		DocType:   r.docType,
		DocID:     r.docID,
		Seq:       len(r.effects) + 1,
		Type:      effectType,
		TargetID:  targetID,
		AuxID:     auxID,
		Delta:     delta,
		PrevValue: prevValue,
		CreatedAt: r.now,
	})
}

// Effects devuelve la lista acumulada en orden.
func (r *EffectRecorder) Effects() []*DocumentEffect {
	return r.effects
}
