package nutrition

import "food-analyzer/api/internal/util"

// DefaultInstruction asks for exactly the template Parse understands.
const DefaultInstruction = `Identify the food item in the given image and provide details in **only** this format:

Food Image Name: [Exact name of the food item]
Weight (grams): [Weight of the dish in grams]
Calories: [Approximate calorie count per serving]
Protein: [Amount of protein per serving in grams]
Fat: [Amount of fat per serving in grams]

Do **not** include any explanation or extra text.`

// LoadInstruction returns <promptDir>/analyze.user.txt when present, else DefaultInstruction.
func LoadInstruction(promptDir string) (string, error) {
	return util.LoadPrompt(promptDir, "analyze", "user", DefaultInstruction)
}
