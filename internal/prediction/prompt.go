package prediction

// predictionPromptTemplate asks the model for a price forecast in a fixed
// JSON shape. Every field is re-validated and clamped after parsing, so the
// template only needs to steer the model toward the right structure.
const predictionPromptTemplate = `You are a price forecasting assistant for a personal finance dashboard.

You MUST respond with ONLY raw JSON. No explanation. No markdown.

Forecast the 30-day price for this item:
- Item: %s
- Current price: $%.2f
- Month: %s

Current economic indicators:
- Inflation rate: %.2f%%
- GDP growth: %.2f%%
- Consumer price index: %.1f
- Unemployment rate: %.2f%%
- Oil prices: $%.2f/barrel
- Dollar strength index: %.1f

Use this JSON format:

{
  "predicted_30day_price": number,
  "price_direction": "UP" | "DOWN" | "STABLE",
  "confidence": 0.6 to 0.95,
  "smart_buy_score": 1 to 10,
  "recommended_action": "BUY_NOW" | "WAIT_1_WEEK" | "WAIT_2_WEEKS" | "MONITOR",
  "reasoning": "one or two sentences",
  "key_factors": ["up to 5 short strings"],
  "expected_savings": number,
  "risk_level": "LOW" | "MEDIUM" | "HIGH"
}`
