package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMovement — combinaciones tipo/razón y signo de la cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMovement_CombinacionesValidas(t *testing.T) {
	casos := []struct {
		movType  string
		reason   string
		quantity string
	}{
		{entity.MovementTypeIN, entity.MovementReasonPurchase, "10"},
		{entity.MovementTypeIN, entity.MovementReasonReturn, "0.5"},
		{entity.MovementTypeOUT, entity.MovementReasonSale, "3"},
		{entity.MovementTypeOUT, entity.MovementReasonUsage, "1.25"},
		{entity.MovementTypeOUT, entity.MovementReasonDamage, "2"},
		{entity.MovementTypeOUT, entity.MovementReasonExpired, "7"},
		{entity.MovementTypeADJUSTMENT, entity.MovementReasonCorrection, "-4"},
		{entity.MovementTypeADJUSTMENT, entity.MovementReasonCorrection, "4"},
		{entity.MovementTypeTRANSFER, entity.MovementReasonTransfer, "-10"},
	}
	for _, c := range casos {
		err := ledger.ValidateMovement(c.movType, c.reason, dec(c.quantity))
		assert.NoError(t, err, "%s/%s con %s debe ser válido", c.movType, c.reason, c.quantity)
	}
}

func TestValidateMovement_RazonNoCorrespondeAlTipo(t *testing.T) {
	// "sale" es razón de salida, no de entrada.
	err := ledger.ValidateMovement(entity.MovementTypeIN, entity.MovementReasonSale, dec("5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// "purchase" no es razón de ajuste.
	err = ledger.ValidateMovement(entity.MovementTypeADJUSTMENT, entity.MovementReasonPurchase, dec("5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateMovement_TipoDesconocido(t *testing.T) {
	err := ledger.ValidateMovement("merge", entity.MovementReasonSale, dec("5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateMovement_InOutExigenMagnitudPositiva(t *testing.T) {
	err := ledger.ValidateMovement(entity.MovementTypeIN, entity.MovementReasonPurchase, dec("-5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada con cantidad negativa")

	err = ledger.ValidateMovement(entity.MovementTypeOUT, entity.MovementReasonSale, dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "salida con cantidad cero")
}

func TestValidateMovement_AjusteCeroInvalido(t *testing.T) {
	err := ledger.ValidateMovement(entity.MovementTypeADJUSTMENT, entity.MovementReasonCorrection, dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SignedDelta — el tipo deriva el signo, el ajuste lo conserva
// ──────────────────────────────────────────────────────────────────────────────

func TestSignedDelta(t *testing.T) {
	d, err := ledger.SignedDelta(entity.MovementTypeIN, dec("10"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("10")), "in suma")

	d, err = ledger.SignedDelta(entity.MovementTypeOUT, dec("10"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-10")), "out resta")

	d, err = ledger.SignedDelta(entity.MovementTypeADJUSTMENT, dec("-3.5"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-3.5")), "adjustment conserva el signo del caller")

	_, err = ledger.SignedDelta("merge", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// NextQuantity — la cadena nunca se vuelve negativa
// ──────────────────────────────────────────────────────────────────────────────

func TestNextQuantity_EncadenaNormal(t *testing.T) {
	next, err := ledger.NextQuantity(dec("50"), dec("-35"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("15")))
}

func TestNextQuantity_ExactamenteCeroEsValido(t *testing.T) {
	next, err := ledger.NextQuantity(dec("15"), dec("-15"))
	require.NoError(t, err)
	assert.True(t, next.IsZero())
}

func TestNextQuantity_ResultadoNegativoRechazado(t *testing.T) {
	_, err := ledger.NextQuantity(dec("15"), dec("-1000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestNextQuantity_DecimalesSinErroresDeRedondeo(t *testing.T) {
	// 0.1 + 0.2 debe ser exactamente 0.3 (aritmética decimal, no float).
	next, err := ledger.NextQuantity(dec("0.1"), dec("0.2"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("0.3")))
}
