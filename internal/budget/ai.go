package budget

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Dan9191/finance-dashboard/internal/integrations/claude"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// planPromptTemplate asks the model for a full budget plan in a fixed JSON
// shape. The category list is embedded so the model can only redistribute,
// never invent categories; the invariant is still enforced after parsing.
const planPromptTemplate = `You are a budget planning assistant for a personal finance dashboard.

You MUST respond with ONLY raw JSON. No explanation. No markdown.

The user is facing this scenario:
- Type: %s
- Monthly income change: $%.2f
- Timeframe: %s
- Current total monthly income: $%.2f
- Additional one-off expenses: $%.2f
- Description: %s

Current monthly budget:
%s

Redistribute the budget across EXACTLY these categories. Do not add or remove categories.

Use this JSON format:

{
  "redistributed_budget": [
    {
      "name": "category name",
      "current_amount": number,
      "suggested_amount": number,
      "priority": "essential" | "important" | "optional",
      "reasoning": "one sentence"
    }
  ],
  "monthly_savings": number,
  "emergency_fund_target": number,
  "debt_payoff_strategy": ["short strings"],
  "investment_strategy": ["short strings"],
  "risk_assessment": "one or two sentences",
  "action_plan": ["short strings"],
  "confidence": 0 to 100
}`

// Completer is the narrow slice of the reasoning client the planner needs
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Planner prefers the reasoning service for scenario analysis and falls back
// to the rule table on any failure. The fallback is unconditional: callers
// always get a plan.
type Planner struct {
	completer Completer
	log       *logrus.Logger
}

// NewPlanner creates a planner. A nil completer means rule-based only.
func NewPlanner(completer Completer, log *logrus.Logger) *Planner {
	return &Planner{completer: completer, log: log}
}

// Analyze produces a budget plan for the scenario
func (p *Planner) Analyze(ctx context.Context, s models.Scenario) models.BudgetPlan {
	if p.completer == nil {
		return Redistribute(s)
	}

	plan, err := p.analyzeWithModel(ctx, s)
	if err != nil {
		p.log.Warnf("Scenario analysis via model failed, using rule-based plan: %v", err)
		return Redistribute(s)
	}
	return plan
}

func (p *Planner) analyzeWithModel(ctx context.Context, s models.Scenario) (models.BudgetPlan, error) {
	prompt := fmt.Sprintf(planPromptTemplate,
		s.ScenarioType, s.IncomeChange, s.Timeframe, s.TotalIncome,
		s.AdditionalExpenses, s.Description, formatBudget(s.CurrentBudget))

	response, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return models.BudgetPlan{}, err
	}

	jsonStr := claude.ExtractJSON(response)
	if jsonStr == "" || !gjson.Valid(jsonStr) {
		return models.BudgetPlan{}, fmt.Errorf("no usable JSON in model response")
	}

	plan, err := parsePlan(jsonStr, s)
	if err != nil {
		return models.BudgetPlan{}, err
	}
	return plan, nil
}

func formatBudget(budget map[string]float64) string {
	names := make([]string, 0, len(budget))
	for name := range budget {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s: $%.2f\n", name, budget[name])
	}
	return sb.String()
}

// parsePlan clamps every field of the model response into a safe domain and
// rejects the plan when the category set does not round-trip.
func parsePlan(jsonStr string, s models.Scenario) (models.BudgetPlan, error) {
	items := gjson.Get(jsonStr, "redistributed_budget").Array()
	if len(items) != len(s.CurrentBudget) {
		return models.BudgetPlan{}, fmt.Errorf("model returned %d categories, expected %d", len(items), len(s.CurrentBudget))
	}

	seen := make(map[string]bool, len(items))
	allocations := make([]models.CategoryAllocation, 0, len(items))
	for _, item := range items {
		name := item.Get("name").String()
		current, ok := s.CurrentBudget[name]
		if !ok || seen[name] {
			return models.BudgetPlan{}, fmt.Errorf("model returned unknown or duplicate category %q", name)
		}
		seen[name] = true

		suggested := math.Max(0, item.Get("suggested_amount").Float())

		priority := item.Get("priority").String()
		switch priority {
		case models.PriorityEssential, models.PriorityImportant, models.PriorityOptional:
		default:
			priority = priorityFor(name)
		}

		reason := item.Get("reasoning").String()
		if reason == "" {
			reason = "Adjusted for the scenario."
		}

		allocations = append(allocations, models.CategoryAllocation{
			Name:            name,
			CurrentAmount:   current,
			SuggestedAmount: suggested,
			Priority:        priority,
			Reasoning:       reason,
		})
	}

	newIncome := s.TotalIncome + s.IncomeChange
	fallbackStrat := strategyFor(s.ScenarioType)

	plan := models.BudgetPlan{
		RedistributedBudget: allocations,
		MonthlySavings:      math.Max(0, gjson.Get(jsonStr, "monthly_savings").Float()),
		EmergencyFundTarget: math.Max(0, gjson.Get(jsonStr, "emergency_fund_target").Float()),
		DebtPayoffStrategy:  stringList(jsonStr, "debt_payoff_strategy", fallbackStrat.debtPayoff),
		InvestmentStrategy:  stringList(jsonStr, "investment_strategy", fallbackStrat.investment),
		RiskAssessment:      gjson.Get(jsonStr, "risk_assessment").String(),
		ActionPlan:          stringList(jsonStr, "action_plan", fallbackStrat.actionPlan),
		Confidence:          math.Max(0, math.Min(100, gjson.Get(jsonStr, "confidence").Float())),
	}
	if plan.RiskAssessment == "" {
		plan.RiskAssessment = fallbackStrat.riskAssessment
	}
	if plan.EmergencyFundTarget == 0 {
		plan.EmergencyFundTarget = math.Max(0, newIncome*6)
	}
	return plan, nil
}

func stringList(jsonStr, path string, fallback []string) []string {
	var out []string
	for _, v := range gjson.Get(jsonStr, path).Array() {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
