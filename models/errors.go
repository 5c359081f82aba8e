package models

import "errors"

// Базовые ошибки доменного слоя. Обработчики переводят их в HTTP-статусы
// через errors.Is, слой базы данных оборачивает их через %w.
var (
	ErrInvalidInput = errors.New("некорректные входные данные")
	ErrNotFound     = errors.New("запись не найдена")
	ErrConflict     = errors.New("конфликт данных")
	ErrStorage      = errors.New("ошибка хранилища")
)
