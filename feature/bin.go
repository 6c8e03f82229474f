package feature

import (
	"fmt"
	"math"
	"strconv"
)

/*
Bin takes a raw numeric value and the x1 and x2 thresholds of a numeric-binned
attribute and returns the label of the range the value falls in:
  * "< x1" for values below x1
  * "x1 - x2" for values between both thresholds, inclusive on both ends
  * "> x2" for values above x2
with the thresholds formatted in their shortest form (25, not 25.000000).

Bin expects x1 <= x2, which NewBinnedFeature guarantees for its features.
*/
func Bin(value, x1, x2 float64) string {
	labels := BinLabels(x1, x2)
	switch {
	case value < x1:
		return labels[0]
	case value <= x2:
		return labels[1]
	}
	return labels[2]
}

/*
BinLabels takes the x1 and x2 thresholds of a numeric-binned attribute and
returns its three range labels in ascending order.
*/
func BinLabels(x1, x2 float64) []string {
	a, b := FormatThreshold(x1), FormatThreshold(x2)
	return []string{
		fmt.Sprintf("< %s", a),
		fmt.Sprintf("%s - %s", a, b),
		fmt.Sprintf("> %s", b),
	}
}

// FormatThreshold formats a threshold the way it appears in range labels.
func FormatThreshold(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
