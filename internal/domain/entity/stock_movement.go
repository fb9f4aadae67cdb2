package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "in"         // entrada
	MovementTypeOUT        = "out"        // salida
	MovementTypeADJUSTMENT = "adjustment" // ajuste con signo explícito
	MovementTypeTRANSFER   = "transfer"   // traslado entre galpones, con signo explícito
)

// Razones válidas de un movimiento de stock.
const (
	MovementReasonPurchase   = "purchase"
	MovementReasonSale       = "sale"
	MovementReasonUsage      = "usage"
	MovementReasonDamage     = "damage"
	MovementReasonExpired    = "expired"
	MovementReasonReturn     = "return"
	MovementReasonCorrection = "correction"
	MovementReasonTransfer   = "transfer"
)

// StockMovement es el registro inmutable del ledger: encadena PreviousQuantity → NewQuantity
// para un ítem. Nunca se modifica ni se borra (es registro de auditoría).
// El orden de la cadena lo da Seq (orden de inserción); Date es editable por el usuario
// y jamás determina el orden.
type StockMovement struct {
	ID               string
	UserID           string
	ItemID           string
	Type             string          // in, out, adjustment, transfer
	Quantity         decimal.Decimal // magnitud digitada por el caller; con signo en adjustment/transfer
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	Reason           string
	RefType          string // dominio origen: sale, purchase_order, expense (opcional)
	RefID            string
	UnitCost         *decimal.Decimal
	TotalCost        *decimal.Decimal
	Supplier         string
	Notes            string
	Date             time.Time // fecha del negocio; por defecto la de creación
	CreatedAt        time.Time
	Seq              int64 // secuencia de inserción por ítem (bigserial)
}
