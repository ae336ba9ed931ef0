package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     uint64
		wantErr  bool
	}{
		{name: "whole algos", amount: "10", decimals: AlgoDecimals, want: 10_000_000},
		{name: "fractional algos", amount: "1.5", decimals: AlgoDecimals, want: 1_500_000},
		{name: "smallest unit", amount: "0.000001", decimals: AlgoDecimals, want: 1},
		{name: "truncates extra digits", amount: "0.0000019", decimals: AlgoDecimals, want: 1},
		{name: "zero", amount: "0.0", decimals: AlgoDecimals, want: 0},
		{name: "no decimals asset", amount: "42", decimals: 0, want: 42},
		{name: "empty", amount: "", decimals: AlgoDecimals, wantErr: true},
		{name: "negative", amount: "-1", decimals: AlgoDecimals, wantErr: true},
		{name: "two dots", amount: "1.2.3", decimals: AlgoDecimals, wantErr: true},
		{name: "not a number", amount: "abc", decimals: AlgoDecimals, wantErr: true},
		{name: "too large", amount: "18446744073709551616", decimals: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromBaseUnits(t *testing.T) {
	tests := []struct {
		amount   uint64
		decimals int
		want     string
	}{
		{amount: 1_500_000, decimals: AlgoDecimals, want: "1.5"},
		{amount: 1, decimals: AlgoDecimals, want: "0.000001"},
		{amount: 0, decimals: AlgoDecimals, want: "0"},
		{amount: 10_000_000, decimals: AlgoDecimals, want: "10"},
		{amount: 42, decimals: 0, want: "42"},
		{amount: math.MaxUint64, decimals: AlgoDecimals, want: "18446744073709.551615"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FromBaseUnits(tt.amount, tt.decimals))
		})
	}
}

func TestSafeMath(t *testing.T) {
	_, err := Add[uint64](math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Mul[uint64](math.MaxUint64, 2)
	require.ErrorIs(t, err, ErrOverflow)

	v, err := Mul[uint64](3, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(12), v)

	require.Equal(t, uint64(0), SaturatingSub[uint64](1, 5))
	require.Equal(t, uint64(4), SaturatingSub[uint64](5, 1))
}
