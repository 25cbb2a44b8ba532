package jwt_test

import (
	"testing"

	"github.com/jhoicas/Inventario-pos/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_Roundtrip(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", jwt.RoleVendedor, "inventario-pos", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, jwt.RoleVendedor, claims.Role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", jwt.RoleAdmin, "inventario-pos", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", jwt.RoleAdmin, "inventario-pos", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_RolDesconocido(t *testing.T) {
	_, err := jwt.Generate(secret, "user-1", "company-1", "cajero", "inventario-pos", 5)
	assert.Error(t, err)
}
