// Package taxid valida identificaciones tributarias colombianas (NIT y cédula) de clientes y proveedores.
package taxid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat     = errors.New("taxid: formato inválido")
	ErrCheckDigit = errors.New("taxid: dígito de verificación inválido")
)

const (
	minDigits     = 5
	maxDigits     = 15
	nitBaseDigits = 9
)

// pesos DIAN (Orden Administrativa 4 de 1989) para los 9 dígitos del NIT, de izquierda a derecha.
var nitWeights = [nitBaseDigits]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// CheckDigit calcula el dígito de verificación (módulo 11 DIAN) de un NIT de 9 dígitos.
func CheckDigit(base string) (byte, error) {
	if len(base) != nitBaseDigits || !allDigits(base) {
		return 0, fmt.Errorf("%w: el NIT base debe tener %d dígitos", ErrFormat, nitBaseDigits)
	}
	var sum int
	for i := 0; i < nitBaseDigits; i++ {
		sum += int(base[i]-'0') * nitWeights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r), nil
	}
	return byte('0' + (11 - r)), nil
}

// Validate acepta "900123456-8" / "900.123.456-8" (NIT con dígito, que se verifica)
// o solo dígitos entre 5 y 15 (cédula o NIT sin dígito).
func Validate(s string) error {
	s = Normalize(s)
	base, dv, hasDV := strings.Cut(s, "-")
	if !hasDV {
		if len(base) < minDigits || len(base) > maxDigits || !allDigits(base) {
			return fmt.Errorf("%w: %q", ErrFormat, s)
		}
		return nil
	}
	if len(dv) != 1 || !allDigits(dv) {
		return fmt.Errorf("%w: %q", ErrFormat, s)
	}
	expected, err := CheckDigit(base)
	if err != nil {
		return err
	}
	if dv[0] != expected {
		return fmt.Errorf("%w: esperado %c, recibido %c", ErrCheckDigit, expected, dv[0])
	}
	return nil
}

// Normalize quita espacios y puntos; "900.123.456-8" → "900123456-8".
func Normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ".", "")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
