package util

import (
	"fmt"
	"math/big"
	"strings"
)

// AlgoDecimals is the number of decimals of the native asset (1 Algo = 10^6 microAlgos).
const AlgoDecimals = 6

// ToBaseUnits converts a human-readable amount to base units,
// e.g. "1.5" Algo (6 decimals) -> 1500000.
// Extra fractional digits beyond decimals are truncated.
func ToBaseUnits(amount string, decimals int) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}
	if strings.HasPrefix(amount, "-") {
		return 0, fmt.Errorf("amount cannot be negative: %s", amount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount format: %s", amount)
	}
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else {
		frac = frac[:decimals]
	}

	combined := strings.TrimLeft(whole+frac, "0")
	if combined == "" {
		return 0, nil
	}

	result, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return 0, fmt.Errorf("invalid amount: %s", amount)
	}
	if !result.IsUint64() {
		return 0, fmt.Errorf("amount out of range: %s", amount)
	}
	return result.Uint64(), nil
}

// FromBaseUnits converts base units to a human-readable amount,
// e.g. 1500000 with 6 decimals -> "1.5".
func FromBaseUnits(amount uint64, decimals int) string {
	str := new(big.Int).SetUint64(amount).String()
	if decimals <= 0 {
		return str
	}

	if len(str) <= decimals {
		str = strings.Repeat("0", decimals-len(str)+1) + str
	}

	insertPos := len(str) - decimals
	whole, frac := str[:insertPos], strings.TrimRight(str[insertPos:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
