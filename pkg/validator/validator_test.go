package validator_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_VentaValida(t *testing.T) {
	in := dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.NewFromInt(100)}},
	}
	assert.NoError(t, validator.Struct(in))
}

func TestStruct_VentaSinLineas(t *testing.T) {
	err := validator.Struct(dto.CreateSaleRequest{})
	require.Error(t, err)

	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "CreateSaleRequest.Lines", verr.Fields[0].Field)
	assert.Equal(t, "required", verr.Fields[0].Tag)
}

func TestStruct_CantidadCeroEnLinea(t *testing.T) {
	in := dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: "p-1", Quantity: 0}},
	}
	err := validator.Struct(in)

	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "CreateSaleRequest.Lines[0].Quantity", verr.Fields[0].Field)
	assert.Equal(t, "gt", verr.Fields[0].Tag)
}

func TestStruct_DecimalNegativo(t *testing.T) {
	in := dto.CreatePurchaseRequest{
		Lines: []dto.PurchaseLineRequest{{ProductID: "p-1", Quantity: 5, CostPrice: decimal.NewFromInt(-1)}},
	}
	err := validator.Struct(in)

	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "gte", verr.Fields[0].Tag)
}

func TestStruct_PrecioOpcionalEnUpdate(t *testing.T) {
	assert.NoError(t, validator.Struct(dto.UpdateProductRequest{}))

	neg := decimal.NewFromInt(-5)
	assert.Error(t, validator.Struct(dto.UpdateProductRequest{Price: &neg}))
}

func TestStruct_TaxID(t *testing.T) {
	valid := []string{"900123456-8", "900.123.456-8", "1020304050"}
	for _, id := range valid {
		assert.NoError(t, validator.Struct(dto.CreatePartyRequest{Name: "Tienda", TaxID: id}), id)
	}

	err := validator.Struct(dto.CreatePartyRequest{Name: "Tienda", TaxID: "900123456-7"})
	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "CreatePartyRequest.TaxID", verr.Fields[0].Field)
	assert.Equal(t, "taxid", verr.Fields[0].Tag)
}
