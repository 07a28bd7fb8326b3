package domain

import "time"

// Product — товар каталога. Идентификатор задаётся вызывающей стороной
// и уникален в пределах коллекции товаров (без учёта регистра).
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	WholesalePrice float64 `json:"wholesalePrice"`
	// Stock не может быть отрицательным; мутации, нарушающие это, отклоняются.
	Stock int `json:"stock"`
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ProductID ссылается на существующий товар на момент создания заказа.
	ProductID string `json:"productId"`
	// Quantity — количество единиц товара, строго положительное.
	Quantity int `json:"quantity"`
	// UnitPrice — снимок цены на момент заказа, не живая ссылка на Product.Price.
	UnitPrice float64 `json:"unitPrice"`
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	// ID генерируется хранилищем в формате "ORD-<token>"; значение от вызывающей
	// стороны игнорируется.
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Items      []OrderItem `json:"items"`
	// Status — произвольная строка, сравнивается без учёта регистра.
	Status string `json:"status"`
	// TotalAmount всегда равен сумме quantity*unitPrice по позициям;
	// пересчитывается хранилищем при добавлении и обновлении.
	TotalAmount float64 `json:"totalAmount"`
	// CreatedAt выставляется один раз при создании, в UTC.
	CreatedAt time.Time `json:"createdAt"`
}

// ItemsTotal возвращает сумму заказа, вычисленную по позициям.
func (o Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Customer — покупатель. Идентификатор генерируется хранилищем
// в формате "CUST-<token>", email уникален без учёта регистра.
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}
