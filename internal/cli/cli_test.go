package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/cli"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const secret = "cli-test-secret"

func testConfig() (*config.Config, error) {
	return &config.Config{
		JWT: config.JWTConfig{Secret: secret, Expiration: 30, Issuer: "stockctl-test"},
	}, nil
}

func run(t *testing.T, opts *cli.RootOptions, args ...string) (string, error) {
	t.Helper()
	if opts.LoadConfig == nil {
		opts.LoadConfig = testConfig
	}
	cmd := cli.NewRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func memoryLots(t *testing.T) func(context.Context, *config.Config) (repository.StockLotRepository, func(), error) {
	t.Helper()
	store := memory.NewStore()
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, qty := range []int64{6, 4} {
		id := []string{"lot-1", "lot-2"}[i]
		require.NoError(t, store.StockLots().Create(context.Background(), &entity.StockLot{
			ID: id, ProductID: "P", InitialQuantity: qty, RemainingQuantity: qty,
			CostPrice: decimal.RequireFromString("10"), CreatedAt: t0.Add(time.Duration(i) * time.Hour),
		}))
	}
	_, err := store.StockLots().Decrement(context.Background(), "lot-1", 6)
	require.NoError(t, err)

	return func(context.Context, *config.Config) (repository.StockLotRepository, func(), error) {
		return store.StockLots(), func() {}, nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// token
// ──────────────────────────────────────────────────────────────────────────────

func TestToken_GeneraTokenValido(t *testing.T) {
	out, err := run(t, &cli.RootOptions{}, "token", "--company", "empresa-1", "--role", jwt.RoleVendedor, "--user", "u-1")
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "empresa-1", claims.CompanyID)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, jwt.RoleVendedor, claims.Role)
	assert.Equal(t, "stockctl-test", claims.Issuer)
}

func TestToken_FormatoJSON(t *testing.T) {
	out, err := run(t, &cli.RootOptions{}, "--format", "json", "token", "--company", "empresa-1")
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, jwt.RoleAdmin, resp["role"])
	assert.Equal(t, float64(30*60), resp["expires_in"])
	assert.NotEmpty(t, resp["user_id"])
}

func TestToken_Errores(t *testing.T) {
	_, err := run(t, &cli.RootOptions{}, "token")
	assert.Error(t, err, "--company es requerido")

	_, err = run(t, &cli.RootOptions{}, "token", "--company", "e", "--role", "cajero")
	assert.Error(t, err)

	noSecret := &cli.RootOptions{LoadConfig: func() (*config.Config, error) { return &config.Config{}, nil }}
	_, err = run(t, noSecret, "token", "--company", "e")
	assert.ErrorContains(t, err, "JWT_SECRET")
}

// ──────────────────────────────────────────────────────────────────────────────
// lots
// ──────────────────────────────────────────────────────────────────────────────

func TestLots_Texto_IncluyeAgotadosYTotal(t *testing.T) {
	out, err := run(t, &cli.RootOptions{OpenLots: memoryLots(t)}, "lots", "P")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "RESTANTE")
	assert.True(t, strings.HasPrefix(lines[1], "lot-1"))
	assert.True(t, strings.HasPrefix(lines[2], "lot-2"))
	assert.Contains(t, lines[3], "4")
}

func TestLots_JSON(t *testing.T) {
	out, err := run(t, &cli.RootOptions{OpenLots: memoryLots(t)}, "--format", "json", "lots", "P", "--limit", "1")
	require.NoError(t, err)

	var resp dto.StockLotListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "lot-1", resp.Items[0].ID)
	assert.Equal(t, int64(0), resp.Items[0].RemainingQuantity)
	assert.Equal(t, 1, resp.Page.Limit)
}

func TestLots_ErrorAlAbrir(t *testing.T) {
	boom := errors.New("sin conexión")
	opts := &cli.RootOptions{OpenLots: func(context.Context, *config.Config) (repository.StockLotRepository, func(), error) {
		return nil, nil, boom
	}}
	_, err := run(t, opts, "lots", "P")
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// root / migrate
// ──────────────────────────────────────────────────────────────────────────────

func TestRoot_FormatoInvalido(t *testing.T) {
	_, err := run(t, &cli.RootOptions{}, "--format", "yaml", "token", "--company", "e")
	assert.ErrorContains(t, err, "formato inválido")
}

func TestMigrate_DireccionInvalida(t *testing.T) {
	_, err := run(t, &cli.RootOptions{}, "migrate", "sideways")
	assert.Error(t, err)

	_, err = run(t, &cli.RootOptions{}, "migrate")
	assert.Error(t, err)
}
