package model

import (
	"fmt"
	"math"
)

// FormatCLP renders an amount as Chilean pesos: rounded to the nearest
// peso with dots as thousands separators, e.g. 4500 -> "$4.500".
func FormatCLP(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	return sign + "$" + s
}
