package budget

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// Keyword lists used to bucket categories by name. Matching is
// case-insensitive substring, so "Emergency Fund" and "emergency savings"
// both land in the emergency bucket.
var (
	emergencyKeywords     = []string{"emergency"}
	savingsKeywords       = []string{"saving", "invest", "retirement"}
	essentialKeywords     = []string{"housing", "rent", "mortgage", "utilit", "grocer", "insurance", "health", "transport", "debt"}
	discretionaryKeywords = []string{"entertainment", "dining", "restaurant", "shopping", "hobb", "subscription", "travel", "vacation"}
)

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func priorityFor(name string) string {
	switch {
	case matchesAny(name, essentialKeywords):
		return models.PriorityEssential
	case matchesAny(name, discretionaryKeywords):
		return models.PriorityOptional
	default:
		return models.PriorityImportant
	}
}

// Redistribute applies the rule table for the scenario type and assembles a
// full budget plan. The output contains exactly the input categories, in
// alphabetical order so repeated calls are identical.
func Redistribute(s models.Scenario) models.BudgetPlan {
	newIncome := s.TotalIncome + s.IncomeChange
	ratio := 1.0
	if s.TotalIncome > 0 {
		ratio = newIncome / s.TotalIncome
	}

	names := make([]string, 0, len(s.CurrentBudget))
	for name := range s.CurrentBudget {
		names = append(names, name)
	}
	sort.Strings(names)

	allocations := make([]models.CategoryAllocation, 0, len(names))
	totalSuggested := 0.0
	for _, name := range names {
		current := s.CurrentBudget[name]
		suggested, reason := applyRule(s.ScenarioType, name, current, s.IncomeChange, ratio)
		suggested = math.Round(math.Max(0, suggested)*100) / 100

		allocations = append(allocations, models.CategoryAllocation{
			Name:            name,
			CurrentAmount:   current,
			SuggestedAmount: suggested,
			Priority:        priorityFor(name),
			Reasoning:       reason,
		})
		totalSuggested += suggested
	}

	strat := strategyFor(s.ScenarioType)

	return models.BudgetPlan{
		RedistributedBudget: allocations,
		MonthlySavings:      math.Max(0, newIncome-totalSuggested),
		EmergencyFundTarget: math.Max(0, newIncome*6),
		DebtPayoffStrategy:  strat.debtPayoff,
		InvestmentStrategy:  strat.investment,
		RiskAssessment:      strat.riskAssessment,
		ActionPlan:          strat.actionPlan,
		Confidence:          75,
	}
}

func applyRule(scenarioType, name string, current, incomeChange, ratio float64) (float64, string) {
	switch scenarioType {
	case models.ScenarioPayRaise:
		switch {
		case matchesAny(name, emergencyKeywords):
			return current + incomeChange*0.2, "Directs 20% of the income increase to your emergency cushion."
		case matchesAny(name, savingsKeywords):
			return current + incomeChange*0.4, "Directs 40% of the income increase to savings and investments."
		default:
			capped := math.Min(ratio, 1.10)
			return current * capped, "Scaled with the new income, capped at 10% to limit lifestyle inflation."
		}
	case models.ScenarioJobLoss:
		if matchesAny(name, essentialKeywords) {
			return current, "Essential expense, kept unchanged while income is reduced."
		}
		return current * 0.3, "Non-essential spending cut by 70% until income recovers."
	case models.ScenarioMajorPurchase:
		if matchesAny(name, discretionaryKeywords) {
			return current * 0.7, "Discretionary spending trimmed 30% to free up cash for the purchase."
		}
		return current, "Unchanged; the purchase is funded from discretionary cuts."
	default:
		return current * ratio, fmt.Sprintf("Scaled proportionally with the income change to %.0f%% of the previous level.", ratio*100)
	}
}
