package llm

func BuildFoodBreakdownPrompt(text string) string {
	return `
You are a nutrition data extraction engine.

Your task:
- Break the food mention below into individual foods with macros.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO comments.
- NO extra text.

If you cannot identify any food, return this exact JSON:
{
  "foods": []
}

Required JSON schema (macros are PER SINGLE SERVING):
{
  "foods": [
    {
      "name": "string, lowercase, singular",
      "quantity": number,
      "calories": number,
      "protein_g": number,
      "carbs_g": number,
      "fat_g": number
    }
  ]
}

Be specific to Indian foods. If portion size is unclear, assume one
standard serving and make reasonable estimates.

FOOD MENTION:
` + text
}
