package domain

import "errors"

var (
	// ErrFormat — содержимое документа существует, но не парсится в ожидаемую схему.
	ErrFormat = errors.New("document format is invalid")
	// ErrConflict — дубликат идентификатора (или email) при добавлении.
	ErrConflict = errors.New("identifier already exists")
	// ErrNotFound — цель обновления отсутствует в коллекции.
	ErrNotFound = errors.New("entity not found")
	// ErrReferential — заказ ссылается на несуществующий товар или покупателя.
	ErrReferential = errors.New("referenced entity does not exist")
	// ErrValidation — нарушение инварианта (например, отрицательный остаток).
	ErrValidation = errors.New("invariant violation")
)

// IsFormat проверяет, является ли ошибка ошибкой формата документа.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsConflict проверяет, является ли ошибка конфликтом идентификаторов.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsReferential проверяет, является ли ошибка нарушением ссылочной целостности.
func IsReferential(err error) bool {
	return errors.Is(err, ErrReferential)
}

// IsValidation проверяет, является ли ошибка нарушением инварианта.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
