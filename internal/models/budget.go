package models

// Scenario types with dedicated redistribution rules
const (
	ScenarioPayRaise      = "pay_raise"
	ScenarioJobLoss       = "job_loss"
	ScenarioMajorPurchase = "major_purchase"
)

// Category priorities
const (
	PriorityEssential = "essential"
	PriorityImportant = "important"
	PriorityOptional  = "optional"
)

// Scenario describes a hypothetical life/financial event used to re-plan a budget
type Scenario struct {
	ScenarioType       string             `json:"scenario_type"`
	IncomeChange       float64            `json:"income_change"` // monthly delta, may be negative
	Timeframe          string             `json:"timeframe"`
	CurrentBudget      map[string]float64 `json:"current_budget"` // category -> monthly amount
	TotalIncome        float64            `json:"total_income"`
	Description        string             `json:"description,omitempty"`
	AdditionalExpenses float64            `json:"additional_expenses,omitempty"`
}

// CategoryAllocation is one category in a redistributed budget
type CategoryAllocation struct {
	Name            string  `json:"name"`
	CurrentAmount   float64 `json:"current_amount"`
	SuggestedAmount float64 `json:"suggested_amount"`
	Priority        string  `json:"priority"` // essential | important | optional
	Reasoning       string  `json:"reasoning"`
}

// BudgetPlan is the result of a scenario analysis
type BudgetPlan struct {
	RedistributedBudget []CategoryAllocation `json:"redistributed_budget"`
	MonthlySavings      float64              `json:"monthly_savings"`
	EmergencyFundTarget float64              `json:"emergency_fund_target"`
	DebtPayoffStrategy  []string             `json:"debt_payoff_strategy"`
	InvestmentStrategy  []string             `json:"investment_strategy"`
	RiskAssessment      string               `json:"risk_assessment"`
	ActionPlan          []string             `json:"action_plan"`
	Confidence          float64              `json:"confidence"` // 0 - 100
}
