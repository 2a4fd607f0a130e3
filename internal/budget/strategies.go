package budget

// strategySet holds the canned guidance attached to a rule-based plan
type strategySet struct {
	debtPayoff     []string
	investment     []string
	riskAssessment string
	actionPlan     []string
}

var strategies = map[string]strategySet{
	"pay_raise": {
		debtPayoff: []string{
			"Keep minimum payments on low-interest debt",
			"Apply part of the raise to the highest-interest balance first",
		},
		investment: []string{
			"Increase retirement contributions to capture any employer match",
			"Invest the remainder in a diversified index fund",
		},
		riskAssessment: "Low risk: higher income widens your margin for error, as long as lifestyle inflation stays contained.",
		actionPlan: []string{
			"Update automatic transfers to savings before the new pay lands",
			"Review withholding so the raise is not under-taxed",
			"Revisit the plan after three pay cycles",
		},
	},
	"job_loss": {
		debtPayoff: []string{
			"Pay minimums only and contact lenders about hardship programs",
			"Avoid new debt while income is interrupted",
		},
		investment: []string{
			"Pause new investment contributions",
			"Do not liquidate retirement accounts except as a last resort",
		},
		riskAssessment: "High risk: without income, the priority is stretching the emergency fund across essential expenses.",
		actionPlan: []string{
			"File for unemployment benefits immediately",
			"Cut non-essential spending to the reduced levels",
			"Track the runway of your emergency fund weekly",
		},
	},
	"major_purchase": {
		debtPayoff: []string{
			"Clear small balances before taking on purchase financing",
			"Compare financing offers against paying cash",
		},
		investment: []string{
			"Keep retirement contributions unchanged",
			"Park the purchase fund in a high-yield savings account",
		},
		riskAssessment: "Medium risk: a large outlay reduces liquidity, so keep the emergency fund untouched.",
		actionPlan: []string{
			"Set a target date and price for the purchase",
			"Redirect trimmed discretionary spending to the purchase fund",
			"Re-run the plan if the purchase price changes",
		},
	},
}

var defaultStrategy = strategySet{
	debtPayoff: []string{
		"Pay more than the minimum on the highest-interest debt",
	},
	investment: []string{
		"Maintain steady contributions to diversified investments",
	},
	riskAssessment: "Medium risk: a balanced allocation that follows your income level.",
	actionPlan: []string{
		"Adjust category budgets to the suggested amounts",
		"Review the plan monthly",
	},
}

func strategyFor(scenarioType string) strategySet {
	if s, ok := strategies[scenarioType]; ok {
		return s
	}
	return defaultStrategy
}
