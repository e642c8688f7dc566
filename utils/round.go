package utils

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Round rounds the exact binary value of v to places decimals, ties to even.
// 2.675 is stored as 2.67499999... and so rounds to 2.67.
func Round(v float64, places int32) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', int(places), 64))
	if err != nil {
		return v
	}
	f, _ := d.Float64()
	return f
}
