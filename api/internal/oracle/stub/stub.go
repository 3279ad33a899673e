package stub

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"food-analyzer/api/internal/oracle"
)

// Engine is a deterministic, no-network oracle intended for CI and local runs.
// It answers in the five-line template so the whole pipeline can be exercised.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Name() string     { return "stub" }
func (e *Engine) GetModel() string { return "stub" }

var dishes = []string{"Grilled Salmon", "Caesar Salad", "Margherita Pizza", "Chicken Curry", "Beef Burger"}

func (e *Engine) Complete(ctx context.Context, req oracle.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(req.ImageDataURI) == "" {
		return "", fmt.Errorf("stub: empty image")
	}
	// Make output deterministic per-input so tests stay stable.
	sum := sha256.Sum256([]byte(req.ImageDataURI))
	n := binary.BigEndian.Uint32(sum[:4])

	dish := dishes[int(n%uint32(len(dishes)))]
	weight := 100 + int(n%300)
	calories := 2 * weight
	protein := float64(n%400) / 10
	fat := float64((n>>8)%300) / 10

	return fmt.Sprintf("Food Image Name: %s\nWeight (grams): %d\nCalories: %d\nProtein: %.1f\nFat: %.1f\n",
		dish, weight, calories, protein, fat), nil
}
