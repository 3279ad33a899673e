package nutrition

import "errors"

var (
	// ErrOracle wraps any failure of the vision model call, timeouts included.
	ErrOracle = errors.New("oracle request failed")
	// ErrExtraction means the model answered but not in the five-line template.
	ErrExtraction = errors.New("unable to analyze food image")
)

// Record is the structured result. All fields stay text; weight, protein and
// fat are grams, calories carry their own qualifier.
type Record struct {
	FoodName string `json:"food_name"`
	Weight   string `json:"weight"`
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Fat      string `json:"fat"`
}
