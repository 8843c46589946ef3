package domain

// FileType классифицирует файл внутри конвенции .opencode
type FileType string

const (
	TypeAgent    FileType = "agent"    // Основной агент (.opencode/agent/*.md)
	TypeSubagent FileType = "subagent" // Вспомогательный агент (mode: subagent)
	TypeCommand  FileType = "command"  // Команда (.opencode/command/*.md)
)

// AgentFile — конфигурационный файл агента из OpenCode-репозитория.
type AgentFile struct {
	ID          string   `json:"id"`   // Уникальный идентификатор, неизменяемый
	Name        string   `json:"name"` // Имя файла (например, "docs.md")
	Path        string   `json:"path"` // Относительный путь в дереве репозитория
	Type        FileType `json:"type"`
	Description string   `json:"description"`
	Content     string   `json:"content"` // Сырое содержимое: frontmatter + инструкции

	// Открытая схема без фиксированных полей: provider, model, permissions и т.д.
	// Потребители обязаны переживать отсутствующие и лишние ключи.
	Metadata map[string]interface{} `json:"metadata"`
}

// Clone возвращает независимую копию записи.
// Реестр отдает наружу только копии, чтобы хендлеры не могли
// мутировать общее состояние в обход UpdateMetadata. Копия глубокая:
// схема metadata открытая, внутри встречаются списки и вложенные
// объекты (permissions и т.п.), и алиас на них — та же утечка
// состояния, что и алиас на саму map.
func (f *AgentFile) Clone() *AgentFile {
	cp := *f
	cp.Metadata = copyMetadata(f.Metadata)
	return &cp
}

func copyMetadata(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyMetaValue(v)
	}
	return out
}

// copyMetaValue покрывает виды значений, которые реально живут в metadata:
// примитивы, списки (из seed приходят []string, из JSON — []interface{})
// и вложенные объекты.
func copyMetaValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyMetadata(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyMetaValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		// Примитивы (string, число, bool) копируются по значению
		return val
	}
}

// MetaString безопасно достает строковое значение из metadata.
func (f *AgentFile) MetaString(key string) (string, bool) {
	v, ok := f.Metadata[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
