package reporter

import (
	"fmt"
	"math"
	"strings"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

// money formats a figure as £1,234.56
func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "£" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// delta is "Best" for the cheapest row, otherwise "+£x" over the cheapest
func delta(row models.ComparisonRow) string {
	if row.Best {
		return "Best"
	}
	return "+" + money(math.Abs(row.Delta))
}
