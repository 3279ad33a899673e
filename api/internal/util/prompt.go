package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadPrompt читает <dir>/<name>.<tp>.txt. Пустой dir или отсутствующий файл — вернётся def.
func LoadPrompt(dir, name, tp, def string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return def, nil
	}
	p := filepath.Join(dir, fmt.Sprintf("%s.%s.txt", name, tp))
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return "", fmt.Errorf("prompt %q: %w", p, err)
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return s, nil
	}
	return def, nil
}
