package nutrition

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salmonReply = `Food Image Name: Grilled Salmon Fillets
Weight (grams): 150
Calories: 250 per serving
Protein: 22.5
Fat: 14`

func template(label, name, weight, calories, protein, fat string) string {
	return label + " Image Name: " + name + "\n" +
		"Weight (grams): " + weight + "\n" +
		"Calories: " + calories + "\n" +
		"Protein: " + protein + "\n" +
		"Fat: " + fat
}

func TestParseSalmonReply(t *testing.T) {
	rec, err := Parse(salmonReply)
	require.NoError(t, err)

	// "fillets" is deleted without collapsing the space it leaves behind
	assert.Equal(t, Record{
		FoodName: "Grilled Salmon ",
		Weight:   "150",
		Calories: "250 per serving",
		Protein:  "22.5",
		Fat:      "14",
	}, rec)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Record
	}{
		{
			name: "plain calories get per portion",
			text: template("Food", "Apple Pie", "120", "300", "3", "12.5"),
			want: Record{FoodName: "Apple Pie", Weight: "120", Calories: "300 per portion", Protein: "3", Fat: "12.5"},
		},
		{
			name: "dish label",
			text: template("Dish", "pad thai", "350", "600", "20", "18"),
			want: Record{FoodName: "Pad Thai", Weight: "350", Calories: "600 per portion", Protein: "20", Fat: "18"},
		},
		{
			name: "fish label",
			text: template("Fish", "SUSHI PLATTER", "200", "400", "25.0", "8"),
			want: Record{FoodName: "Sushi Platter", Weight: "200", Calories: "400 per portion", Protein: "25.0", Fat: "8"},
		},
		{
			name: "labels are case-insensitive",
			text: strings.ToLower(template("Food", "Toast", "50", "130", "4", "2")),
			want: Record{FoodName: "Toast", Weight: "50", Calories: "130 per portion", Protein: "4", Fat: "2"},
		},
		{
			name: "ranges",
			text: template("Food", "Lasagna", "300-350", "450-500", "22", "19"),
			want: Record{FoodName: "Lasagna", Weight: "300-350", Calories: "450-500 per portion", Protein: "22", Fat: "19"},
		},
		{
			name: "single trailing calorie word",
			text: template("Food", "Omelette", "180", "250 kcal", "14", "17"),
			want: Record{FoodName: "Omelette", Weight: "180", Calories: "250 kcal per portion", Protein: "14", Fat: "17"},
		},
		{
			name: "per serving check is case-sensitive",
			text: template("Food", "Omelette", "180", "250 Per Serving", "14", "17"),
			want: Record{FoodName: "Omelette", Weight: "180", Calories: "250 Per Serving per portion", Protein: "14", Fat: "17"},
		},
		{
			name: "fillets in the middle leaves a double space",
			text: template("Food", "Cod Fillets with Rice", "250", "380", "30", "6"),
			want: Record{FoodName: "Cod  With Rice", Weight: "250", Calories: "380 per portion", Protein: "30", Fat: "6"},
		},
		{
			name: "preamble and trailing chatter are ignored",
			text: "Sure! Here you go:\n\n" + template("Food", "Banana", "118", "105", "1.3", "0.4") + "\nEnjoy your meal.",
			want: Record{FoodName: "Banana", Weight: "118", Calories: "105 per portion", Protein: "1.3", Fat: "0.4"},
		},
		{
			name: "extra whitespace and CRLF",
			text: "Food Image Name:   Greek Salad  \r\n  Weight (grams):  220 \r\n Calories: 180\r\nProtein: 5\r\nFat: 15\r\n",
			want: Record{FoodName: "Greek Salad", Weight: "220", Calories: "180 per portion", Protein: "5", Fat: "15"},
		},
		{
			name: "cyrillic unit word",
			text: "Food Image Name: Борщ\nWeight (grams): 300\nCalories: 250 ккал\nProtein: 10\nFat: 8",
			want: Record{FoodName: "Борщ", Weight: "300", Calories: "250 ккал per portion", Protein: "10", Fat: "8"},
		},
		{
			name: "no-break spaces",
			text: "Food Image Name: Pho\u00a0Bo\nWeight (grams):\u00a0300\nCalories:\u00a0250\u00a0\nProtein: 10\nFat: 8",
			want: Record{FoodName: "Pho\u00a0Bo", Weight: "300", Calories: "250 per portion", Protein: "10", Fat: "8"},
		},
		{
			name: "non-ascii digits",
			text: template("Food", "Hummus", "١٢٠", "٢٠٠", "٨", "١٠"),
			want: Record{FoodName: "Hummus", Weight: "١٢٠", Calories: "٢٠٠ per portion", Protein: "٨", Fat: "١٠"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "prose only", text: "This looks like a delicious plate of pasta."},
		{name: "unknown label word", text: template("Meal", "Pasta", "200", "300", "10", "5")},
		{name: "fuzzy label word", text: template("Foods", "Pasta", "200", "300", "10", "5")},
		{name: "missing fat", text: "Food Image Name: Pasta\nWeight (grams): 200\nCalories: 300\nProtein: 10\n"},
		{name: "protein and fat swapped", text: "Food Image Name: Pasta\nWeight (grams): 200\nCalories: 300\nFat: 5\nProtein: 10"},
		{name: "weight and calories swapped", text: "Food Image Name: Pasta\nCalories: 300\nWeight (grams): 200\nProtein: 10\nFat: 5"},
		{name: "weight with unit", text: template("Food", "Pasta", "200 g", "300", "10", "5")},
		{name: "non-numeric protein", text: template("Food", "Pasta", "200", "300", "ten", "5")},
		{name: "two calorie words", text: template("Food", "Pasta", "200", "300 kcal total", "10", "5")},
		{name: "cyrillic unit then another word", text: template("Food", "Борщ", "300", "250 ккал всего", "10", "8")},
		{name: "same line", text: "Food Image Name: Pasta Weight (grams): 200 Calories: 300 Protein: 10 Fat: 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrExtraction))
			assert.Equal(t, Record{}, rec)
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	first, err := Parse(salmonReply)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Parse(salmonReply)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"grilled salmon ":    "Grilled Salmon ",
		"mac and cheese":     "Mac And Cheese",
		"o'neil's stew":      "O'Neil'S Stew",
		"3rd course":         "3Rd Course",
		"chicken-tikka":      "Chicken-Tikka",
		"éclair au chocolat": "Éclair Au Chocolat",
		"BLT SANDWICH":       "Blt Sandwich",
	}
	for in, want := range tests {
		assert.Equal(t, want, TitleCase(in), "TitleCase(%q)", in)
	}
}
