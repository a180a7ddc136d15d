package model

import "testing"

func TestFormatCLP(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{750, "$750"},
		{4500, "$4.500"},
		{20000, "$20.000"},
		{1234567, "$1.234.567"},
		{1499.6, "$1.500"},
		{-4500, "-$4.500"},
	}
	for _, tc := range cases {
		if got := FormatCLP(tc.in); got != tc.want {
			t.Errorf("FormatCLP(%g) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
