package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// reasonsByType define qué razones son válidas para cada tipo de movimiento.
var reasonsByType = map[string]map[string]bool{
	entity.MovementTypeIN: {
		entity.MovementReasonPurchase: true,
		entity.MovementReasonReturn:   true,
	},
	entity.MovementTypeOUT: {
		entity.MovementReasonSale:    true,
		entity.MovementReasonUsage:   true,
		entity.MovementReasonDamage:  true,
		entity.MovementReasonExpired: true,
	},
	entity.MovementTypeADJUSTMENT: {
		entity.MovementReasonCorrection: true,
	},
	entity.MovementTypeTRANSFER: {
		entity.MovementReasonTransfer: true,
	},
}

// ValidateMovement verifica tipo, razón y signo de la cantidad.
// IN/OUT exigen magnitud positiva (el signo lo deriva el tipo);
// ADJUSTMENT y TRANSFER llevan el signo del caller y no pueden ser cero.
func ValidateMovement(movType, reason string, quantity decimal.Decimal) error {
	valid, ok := reasonsByType[movType]
	if !ok {
		return domain.ErrInvalidInput
	}
	if !valid[reason] {
		return domain.ErrInvalidInput
	}
	switch movType {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if !quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		if quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// SignedDelta traduce (tipo, cantidad) al delta con signo que se aplica a la proyección:
// IN suma, OUT resta, ADJUSTMENT/TRANSFER aplican la cantidad tal cual la firmó el caller.
func SignedDelta(movType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch movType {
	case entity.MovementTypeIN:
		return quantity, nil
	case entity.MovementTypeOUT:
		return quantity.Neg(), nil
	case entity.MovementTypeADJUSTMENT, entity.MovementTypeTRANSFER:
		return quantity, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// NextQuantity calcula la nueva cantidad de la cadena. Rechaza resultados negativos:
// ningún movimiento comprometido puede dejar NewQuantity < 0 (invariante del ledger).
func NextQuantity(previous, delta decimal.Decimal) (decimal.Decimal, error) {
	next := previous.Add(delta)
	if next.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	return next, nil
}
