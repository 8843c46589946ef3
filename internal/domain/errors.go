package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound — запрошенная запись отсутствует в реестре.
// На HTTP-границе транслируется в 404; любая другая ошибка — в 500.
var ErrNotFound = errors.New("agent file not found")

// NotFoundf добавляет контекст (id записи) к ErrNotFound,
// сохраняя возможность проверки через errors.Is.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
