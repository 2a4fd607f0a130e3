package prediction

import (
	"strings"
	"time"
)

// seasonalFactors holds the expected fractional price drift per item and
// calendar month (January first), independent of the macroeconomic trend.
// Electronics dip after the holidays and around November sales; travel and
// clothing peak in summer; produce-heavy grocery baskets cheapen mid-year.
var seasonalFactors = map[string][12]float64{
	"laptop":     {-0.03, -0.02, 0.00, 0.01, 0.01, 0.02, 0.03, 0.04, 0.02, 0.00, -0.05, -0.02},
	"smartphone": {-0.02, -0.01, 0.00, 0.01, 0.01, 0.01, 0.02, 0.03, 0.05, 0.02, -0.04, -0.03},
	"tv":         {-0.04, -0.03, -0.01, 0.00, 0.01, 0.02, 0.02, 0.02, 0.01, 0.00, -0.06, -0.03},
	"furniture":  {0.00, -0.01, -0.02, 0.00, 0.01, 0.02, 0.03, 0.02, 0.00, -0.01, -0.03, -0.02},
	"clothing":   {-0.05, -0.03, 0.00, 0.02, 0.02, 0.03, 0.04, 0.01, -0.01, 0.00, -0.04, -0.02},
	"groceries":  {0.01, 0.01, 0.00, -0.01, -0.02, -0.03, -0.03, -0.02, -0.01, 0.00, 0.01, 0.02},
	"airfare":    {-0.03, -0.02, 0.01, 0.02, 0.04, 0.07, 0.08, 0.05, -0.01, -0.02, 0.01, 0.05},
	"appliances": {-0.02, -0.01, 0.00, 0.00, 0.02, 0.02, 0.03, 0.02, 0.03, 0.01, -0.05, -0.02},
}

// SeasonalFactor returns the expected seasonal drift for an item in a given
// month. Items absent from the table contribute no seasonal component.
func SeasonalFactor(itemName string, month time.Month) float64 {
	factors, ok := seasonalFactors[strings.ToLower(strings.TrimSpace(itemName))]
	if !ok {
		return 0
	}
	return factors[int(month)-1]
}
