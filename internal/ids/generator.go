package ids

import (
	"strings"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
)

// Generator выдаёт идентификаторы вида "<PREFIX>-<token>", где token — полный
// UUIDv4 без дефисов. 122 бит случайности делают коллизию пренебрежимо маловероятной
// на ожидаемых объёмах каталога; усечённые фрагменты не используются.
type Generator struct{}

// New возвращает генератор идентификаторов.
func New() Generator {
	return Generator{}
}

// Next формирует очередной идентификатор с заданным префиксом.
func (Generator) Next(prefix string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(prefix) + "-" + token
}

var _ domain.IdentifierGenerator = Generator{}
