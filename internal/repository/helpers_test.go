package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursFromColumn(t *testing.T) {
	for _, v := range []any{nil, "lots", "nan", "NaN", "inf", "-Inf", []byte("Infinity"), -1.0, "-2"} {
		assert.Nil(t, hoursFromColumn(v), "%#v", v)
	}

	for v, want := range map[any]float64{2.5: 2.5, int64(3): 3, " 1.5 ": 1.5, "0": 0} {
		got := hoursFromColumn(v)
		require.NotNil(t, got, "%#v", v)
		assert.Equal(t, want, *got)
	}
}
