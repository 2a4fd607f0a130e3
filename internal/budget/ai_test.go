package budget

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testScenario() models.Scenario {
	return models.Scenario{
		ScenarioType: models.ScenarioPayRaise,
		IncomeChange: 1000,
		TotalIncome:  5000,
		Timeframe:    "6 months",
		CurrentBudget: map[string]float64{
			"Savings":       500,
			"Entertainment": 300,
		},
	}
}

func TestAnalyzeWithoutCompleterUsesRules(t *testing.T) {
	planner := NewPlanner(nil, logrus.New())
	plan := planner.Analyze(context.Background(), testScenario())

	if plan.Confidence != 75 {
		t.Fatalf("confidence = %v, want rule-based 75", plan.Confidence)
	}
	if len(plan.RedistributedBudget) != 2 {
		t.Fatalf("categories = %d, want 2", len(plan.RedistributedBudget))
	}
}

func TestAnalyzeFallsBackOnModelError(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("service down")}
	planner := NewPlanner(completer, logrus.New())

	plan := planner.Analyze(context.Background(), testScenario())

	if completer.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on the budget path)", completer.calls)
	}
	if plan.Confidence != 75 {
		t.Fatalf("confidence = %v, want rule-based 75", plan.Confidence)
	}
}

func TestAnalyzeFallsBackOnMalformedResponse(t *testing.T) {
	planner := NewPlanner(&fakeCompleter{response: "sorry, I can't do that"}, logrus.New())

	plan := planner.Analyze(context.Background(), testScenario())
	if plan.Confidence != 75 {
		t.Fatalf("confidence = %v, want rule-based 75", plan.Confidence)
	}
}

func TestAnalyzeFallsBackOnCategoryMismatch(t *testing.T) {
	// Model invents a category: the whole plan is rejected
	response := `{
		"redistributed_budget": [
			{"name": "Savings", "suggested_amount": 900, "priority": "important", "reasoning": "ok"},
			{"name": "Yachts", "suggested_amount": 100, "priority": "optional", "reasoning": "no"}
		],
		"confidence": 90
	}`
	planner := NewPlanner(&fakeCompleter{response: response}, logrus.New())

	plan := planner.Analyze(context.Background(), testScenario())
	if plan.Confidence != 75 {
		t.Fatalf("confidence = %v, want rule-based 75 after invariant violation", plan.Confidence)
	}
}

func TestAnalyzeParsesAndClampsModelPlan(t *testing.T) {
	response := `Here you go:
{
		"redistributed_budget": [
			{"name": "Savings", "suggested_amount": 950, "priority": "important", "reasoning": "Grow savings with the raise."},
			{"name": "Entertainment", "suggested_amount": -50, "priority": "luxury", "reasoning": ""}
		],
		"monthly_savings": -100,
		"emergency_fund_target": 40000,
		"debt_payoff_strategy": ["Pay down the card"],
		"investment_strategy": [],
		"risk_assessment": "",
		"action_plan": ["Do the thing"],
		"confidence": 150
}`
	planner := NewPlanner(&fakeCompleter{response: response}, logrus.New())

	plan := planner.Analyze(context.Background(), testScenario())

	if got := suggestedFor(t, plan, "Savings"); got != 950 {
		t.Fatalf("Savings = %v, want 950", got)
	}
	if got := suggestedFor(t, plan, "Entertainment"); got != 0 {
		t.Fatalf("Entertainment = %v, want clamped 0", got)
	}
	if plan.Confidence != 100 {
		t.Fatalf("confidence = %v, want clamped 100", plan.Confidence)
	}
	if plan.MonthlySavings != 0 {
		t.Fatalf("monthly savings = %v, want clamped 0", plan.MonthlySavings)
	}
	if plan.EmergencyFundTarget != 40000 {
		t.Fatalf("emergency fund target = %v, want 40000", plan.EmergencyFundTarget)
	}
	// Empty lists and text fall back to the canned strategy set
	if len(plan.InvestmentStrategy) == 0 {
		t.Fatal("investment strategy should fall back to the canned set")
	}
	if plan.RiskAssessment == "" {
		t.Fatal("risk assessment should fall back to the canned text")
	}

	for _, alloc := range plan.RedistributedBudget {
		if alloc.Name == "Entertainment" {
			if alloc.Priority != models.PriorityOptional {
				t.Fatalf("Entertainment priority = %q, want derived optional", alloc.Priority)
			}
			if alloc.Reasoning == "" {
				t.Fatal("empty model reasoning should be replaced")
			}
		}
	}
}

func TestFormatBudgetSorted(t *testing.T) {
	out := formatBudget(map[string]float64{"B": 2, "A": 1})
	want := "- A: $1.00\n- B: $2.00\n"
	if out != want {
		t.Fatalf("formatBudget = %q, want %q", out, want)
	}
}
