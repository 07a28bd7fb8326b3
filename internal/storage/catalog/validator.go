package catalog

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
)

// Чистые проверки согласованности между коллекциями. Выполняются на снимке
// документа внутри той же эксклюзивной секции, что и мутация, поэтому между
// проверкой и последующей записью гонок нет.

// missingProducts возвращает идентификаторы товаров из позиций заказа,
// отсутствующих в коллекции товаров. Порядок соответствует позициям заказа.
func missingProducts(items []domain.OrderItem, products []domain.Product) []string {
	var missing []string
	for _, item := range items {
		if !containsID(products, productID, item.ProductID) {
			missing = append(missing, item.ProductID)
		}
	}
	return missing
}

// customerExists сообщает, есть ли покупатель с данным идентификатором.
func customerExists(id string, customers []domain.Customer) bool {
	return containsID(customers, customerID, id)
}

// emailTaken сообщает, занят ли email другим покупателем (не selfID).
func emailTaken(email, selfID string, customers []domain.Customer) bool {
	for _, customer := range customers {
		if strings.EqualFold(customer.ID, selfID) {
			continue
		}
		if strings.EqualFold(customer.Email, email) {
			return true
		}
	}
	return false
}

// validateItems проверяет инварианты позиций заказа до захвата секции:
// они не зависят от содержимого документа.
func validateItems(items []domain.OrderItem) error {
	for _, item := range items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: order item product id is required", domain.ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: order item quantity must be positive, got %d", domain.ErrValidation, item.Quantity)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: order item unit price must be non-negative", domain.ErrValidation)
		}
	}
	return nil
}

// decrementStock списывает остатки товаров под позиции заказа. Недостаток
// остатка по любой позиции отклоняет заказ целиком; частично изменённый
// документ при этом не записывается.
func decrementStock(products []domain.Product, items []domain.OrderItem) error {
	for _, item := range items {
		for i := range products {
			if strings.EqualFold(products[i].ID, item.ProductID) {
				if products[i].Stock < item.Quantity {
					return fmt.Errorf("%w: insufficient stock for product %s: have %d, need %d",
						domain.ErrValidation, products[i].ID, products[i].Stock, item.Quantity)
				}
				products[i].Stock -= item.Quantity
				break
			}
		}
	}
	return nil
}

func productID(p domain.Product) string   { return p.ID }
func orderID(o domain.Order) string       { return o.ID }
func customerID(c domain.Customer) string { return c.ID }
