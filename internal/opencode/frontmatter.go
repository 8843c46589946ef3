package opencode

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter — структурированная YAML-преамбула agent-файла,
// зажатая между разделителями "---" в начале содержимого.
type Frontmatter struct {
	Description string `yaml:"description"`
	Mode        string `yaml:"mode"` // "subagent" для вспомогательных агентов, иначе пусто
}

const delimiter = "---"

// Parse выделяет преамбулу из содержимого agent-файла и возвращает ее
// вместе с телом (прозой инструкций). Файл без преамбулы валиден —
// например, command-файлы состоят из одного тела.
func Parse(content string) (Frontmatter, string, error) {
	var fm Frontmatter

	trimmed := strings.TrimLeft(content, "\n")
	if !strings.HasPrefix(trimmed, delimiter+"\n") {
		return fm, content, nil
	}

	rest := trimmed[len(delimiter)+1:]

	// Ищем закрывающий разделитель на отдельной строке
	idx := strings.Index(rest, "\n"+delimiter)
	if idx < 0 {
		// Блок открыт, но не закрыт — считаем всё содержимое телом
		return fm, content, nil
	}

	raw := rest[:idx+1]
	body := strings.TrimLeft(rest[idx+1+len(delimiter):], "\n")

	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("opencode: invalid frontmatter: %w", err)
	}
	return fm, body, nil
}
