package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/imprenta-pro/internal/domain/validation"
)

func TestSummary_FacturaInvalida(t *testing.T) {
	in := buildInput()
	in.Vendor.Active = false
	in.Items = nil

	s := validation.Validate(in, validation.Policy{}).Summary()

	assert.Contains(t, s, "INVÁLIDA")
	assert.Contains(t, s, "Errores:")
	assert.Contains(t, s, "inactivo")
	assert.Contains(t, s, "líneas")
}

func TestSummary_FacturaValidaConVariacion(t *testing.T) {
	in := buildInput()
	in.Order.Total = dec("950")

	s := validation.Validate(in, validation.Policy{}).Summary()

	assert.Contains(t, s, "VÁLIDA")
	assert.Contains(t, s, "Advertencias:")
	assert.Contains(t, s, "Montos:", "el resumen incluye la sección de montos cuando el chequeo pasó")
}
