package telegram

import (
	"context"
	"errors"
	"strings"

	"food-analyzer/api/internal/imaging"
	"food-analyzer/api/internal/nutrition"
)

const (
	textPhotoAccepted  = "Photo received, analyzing…"
	textSendPhoto      = "Send me a photo of a dish and I will estimate its nutrition."
	textDownloadFailed = "❌ Could not download the photo, please send it again."
)

func usageText(engines []string) string {
	var b strings.Builder
	b.WriteString(textSendPhoto)
	b.WriteString("\n\nCommands:\n/engine - show the current model\n")
	if len(engines) > 0 {
		b.WriteString("/engine {" + strings.Join(engines, "|") + "} - switch the model for this chat\n")
	}
	b.WriteString("/health - check the bot")
	return b.String()
}

// FormatRecord renders the five fields as a chat reply.
func FormatRecord(rec nutrition.Record) string {
	var b strings.Builder
	b.WriteString("🍽 ")
	b.WriteString(strings.TrimSpace(rec.FoodName))
	b.WriteString("\nWeight: ")
	b.WriteString(rec.Weight)
	b.WriteString(" g\nCalories: ")
	b.WriteString(rec.Calories)
	b.WriteString("\nProtein: ")
	b.WriteString(rec.Protein)
	b.WriteString(" g\nFat: ")
	b.WriteString(rec.Fat)
	b.WriteString(" g")
	return b.String()
}

func errorText(err error) string {
	switch {
	case errors.Is(err, nutrition.ErrExtraction):
		return "❌ Unable to analyze food image"
	case errors.Is(err, imaging.ErrDecode):
		return "❌ Unable to decode image"
	case errors.Is(err, context.DeadlineExceeded):
		return "⏱ The food model did not answer in time, please try again."
	case errors.Is(err, nutrition.ErrOracle):
		return "❌ Food model request failed, please try again later."
	default:
		return "❌ " + err.Error()
	}
}
