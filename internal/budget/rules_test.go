package budget

import (
	"math"
	"testing"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

func suggestedFor(t *testing.T, plan models.BudgetPlan, name string) float64 {
	t.Helper()
	for _, alloc := range plan.RedistributedBudget {
		if alloc.Name == name {
			return alloc.SuggestedAmount
		}
	}
	t.Fatalf("category %q missing from plan", name)
	return 0
}

func TestRedistributePayRaise(t *testing.T) {
	plan := Redistribute(models.Scenario{
		ScenarioType: models.ScenarioPayRaise,
		IncomeChange: 1000,
		TotalIncome:  5000,
		CurrentBudget: map[string]float64{
			"Savings":       500,
			"Entertainment": 300,
		},
	})

	// Savings gets 40% of the raise; lifestyle categories are capped at +10%
	if got := suggestedFor(t, plan, "Savings"); got != 900 {
		t.Fatalf("Savings = %v, want 900", got)
	}
	if got := suggestedFor(t, plan, "Entertainment"); got != 330 {
		t.Fatalf("Entertainment = %v, want 330", got)
	}
	if plan.Confidence != 75 {
		t.Fatalf("confidence = %v, want 75", plan.Confidence)
	}
	if plan.EmergencyFundTarget != 36000 {
		t.Fatalf("emergency fund target = %v, want 36000", plan.EmergencyFundTarget)
	}
}

func TestRedistributePayRaiseEmergencyFund(t *testing.T) {
	plan := Redistribute(models.Scenario{
		ScenarioType: models.ScenarioPayRaise,
		IncomeChange: 1000,
		TotalIncome:  5000,
		CurrentBudget: map[string]float64{
			"Emergency Fund": 200,
		},
	})

	if got := suggestedFor(t, plan, "Emergency Fund"); got != 400 {
		t.Fatalf("Emergency Fund = %v, want 400", got)
	}
}

func TestRedistributeJobLoss(t *testing.T) {
	plan := Redistribute(models.Scenario{
		ScenarioType: models.ScenarioJobLoss,
		IncomeChange: -4000,
		TotalIncome:  5000,
		CurrentBudget: map[string]float64{
			"Housing":       1500,
			"Entertainment": 200,
		},
	})

	if got := suggestedFor(t, plan, "Housing"); got != 1500 {
		t.Fatalf("Housing = %v, want unchanged 1500", got)
	}
	if got := suggestedFor(t, plan, "Entertainment"); got != 60 {
		t.Fatalf("Entertainment = %v, want 60", got)
	}
}

func TestRedistributeMajorPurchase(t *testing.T) {
	plan := Redistribute(models.Scenario{
		ScenarioType: models.ScenarioMajorPurchase,
		TotalIncome:  5000,
		CurrentBudget: map[string]float64{
			"Groceries": 600,
			"Dining":    400,
		},
	})

	if got := suggestedFor(t, plan, "Groceries"); got != 600 {
		t.Fatalf("Groceries = %v, want unchanged 600", got)
	}
	if got := suggestedFor(t, plan, "Dining"); math.Abs(got-280) > 1e-9 {
		t.Fatalf("Dining = %v, want 280", got)
	}
}

func TestRedistributeDefaultScalesWithIncome(t *testing.T) {
	plan := Redistribute(models.Scenario{
		ScenarioType: "new_baby",
		IncomeChange: -1000,
		TotalIncome:  5000,
		CurrentBudget: map[string]float64{
			"Groceries": 500,
		},
	})

	if got := suggestedFor(t, plan, "Groceries"); got != 400 {
		t.Fatalf("Groceries = %v, want 400", got)
	}
}

func TestRedistributeKeepsCategorySet(t *testing.T) {
	budget := map[string]float64{
		"Housing":        1500,
		"Groceries":      600,
		"Entertainment":  300,
		"Savings":        500,
		"Emergency Fund": 200,
	}

	for _, scenarioType := range []string{models.ScenarioPayRaise, models.ScenarioJobLoss, models.ScenarioMajorPurchase, "unknown"} {
		plan := Redistribute(models.Scenario{
			ScenarioType:  scenarioType,
			IncomeChange:  500,
			TotalIncome:   5000,
			CurrentBudget: budget,
		})

		if len(plan.RedistributedBudget) != len(budget) {
			t.Fatalf("%s: plan has %d categories, want %d", scenarioType, len(plan.RedistributedBudget), len(budget))
		}
		for _, alloc := range plan.RedistributedBudget {
			if _, ok := budget[alloc.Name]; !ok {
				t.Fatalf("%s: unexpected category %q", scenarioType, alloc.Name)
			}
			if alloc.SuggestedAmount < 0 {
				t.Fatalf("%s: negative suggested amount for %q", scenarioType, alloc.Name)
			}
			if alloc.Reasoning == "" {
				t.Fatalf("%s: empty reasoning for %q", scenarioType, alloc.Name)
			}
		}
	}
}

func TestRedistributeMonthlySavingsNonNegative(t *testing.T) {
	plan := Redistribute(models.Scenario{
		ScenarioType: models.ScenarioJobLoss,
		IncomeChange: -5000,
		TotalIncome:  5000,
		CurrentBudget: map[string]float64{
			"Housing": 1500,
		},
	})

	if plan.MonthlySavings != 0 {
		t.Fatalf("monthly savings = %v, want 0 when income disappears", plan.MonthlySavings)
	}
	if plan.EmergencyFundTarget != 0 {
		t.Fatalf("emergency fund target = %v, want 0 when income disappears", plan.EmergencyFundTarget)
	}
}

func TestPriorities(t *testing.T) {
	cases := []struct {
		name     string
		priority string
	}{
		{"Housing", models.PriorityEssential},
		{"Utilities", models.PriorityEssential},
		{"Entertainment", models.PriorityOptional},
		{"Travel Fund", models.PriorityOptional},
		{"Savings", models.PriorityImportant},
		{"Miscellaneous", models.PriorityImportant},
	}

	for _, tc := range cases {
		if got := priorityFor(tc.name); got != tc.priority {
			t.Fatalf("priorityFor(%q) = %q, want %q", tc.name, got, tc.priority)
		}
	}
}

func TestStrategyLookup(t *testing.T) {
	for _, scenarioType := range []string{models.ScenarioPayRaise, models.ScenarioJobLoss, models.ScenarioMajorPurchase} {
		s := strategyFor(scenarioType)
		if len(s.debtPayoff) == 0 || len(s.investment) == 0 || len(s.actionPlan) == 0 || s.riskAssessment == "" {
			t.Fatalf("%s: incomplete strategy set", scenarioType)
		}
	}

	if strategyFor("unknown").riskAssessment != defaultStrategy.riskAssessment {
		t.Fatal("unknown scenario should use the default strategy")
	}
}
