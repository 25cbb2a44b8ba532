package taxid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/pkg/taxid"
)

func TestCheckDigit_NITConocidos(t *testing.T) {
	cases := map[string]byte{
		"800197268": '4', // DIAN
		"900123456": '8',
	}
	for base, want := range cases {
		got, err := taxid.CheckDigit(base)
		require.NoError(t, err)
		assert.Equal(t, want, got, base)
	}

	_, err := taxid.CheckDigit("12345")
	assert.ErrorIs(t, err, taxid.ErrFormat)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"800197268-4", nil},
		{" 800.197.268-4 ", nil},
		{"1020304050", nil},
		{"800197268-5", taxid.ErrCheckDigit},
		{"800197268-", taxid.ErrFormat},
		{"8001972-4", taxid.ErrFormat},
		{"12-ab", taxid.ErrFormat},
		{"1234", taxid.ErrFormat},
		{"", taxid.ErrFormat},
	}
	for _, tc := range cases {
		err := taxid.Validate(tc.in)
		if tc.want == nil {
			assert.NoError(t, err, tc.in)
			continue
		}
		assert.ErrorIs(t, err, tc.want, tc.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "900123456-8", taxid.Normalize(" 900.123.456-8 "))
}
