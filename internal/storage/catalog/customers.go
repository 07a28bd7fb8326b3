package catalog

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

// Префикс системных идентификаторов покупателей.
const customerIDPrefix = "CUST"

// CustomerRepository — репозиторий покупателей поверх документного хранилища.
// Идентификатор генерируется системой; email уникален без учёта регистра,
// иначе поиск по email мог бы вернуть больше одного результата.
type CustomerRepository struct {
	customers collection[domain.Customer]
	idgen     domain.IdentifierGenerator
	logger    *log.Entry
}

// NewCustomerRepository конструирует репозиторий покупателей.
func NewCustomerRepository(store *document.Store, idgen domain.IdentifierGenerator, logger *log.Entry) *CustomerRepository {
	if logger == nil {
		logger = log.WithField("component", "customer-repository")
	}
	return &CustomerRepository{
		customers: collection[domain.Customer]{
			store: store,
			slice: func(doc *document.Document) *[]domain.Customer { return &doc.Customers },
			id:    customerID,
		},
		idgen:  idgen,
		logger: logger,
	}
}

// List возвращает всех покупателей.
func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	return r.customers.list(ctx)
}

// Get возвращает покупателя по идентификатору; отсутствие — не ошибка.
func (r *CustomerRepository) Get(ctx context.Context, id string) (domain.Customer, bool, error) {
	return r.customers.get(ctx, id)
}

// ByEmail возвращает покупателя по email (без учёта регистра). Уникальность
// email гарантирует не более одного результата.
func (r *CustomerRepository) ByEmail(ctx context.Context, email string) (domain.Customer, bool, error) {
	matches, err := r.customers.filter(ctx, func(c domain.Customer) bool {
		return strings.EqualFold(c.Email, email)
	})
	if err != nil {
		return domain.Customer{}, false, err
	}
	if len(matches) == 0 {
		return domain.Customer{}, false, nil
	}
	return matches[0], true, nil
}

// Add сохраняет нового покупателя с идентификатором "CUST-<token>".
// Занятый email — domain.ErrConflict; пустой — domain.ErrValidation.
func (r *CustomerRepository) Add(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if strings.TrimSpace(customer.Email) == "" {
		return domain.Customer{}, fmt.Errorf("%w: customer email is required", domain.ErrValidation)
	}

	added, err := r.customers.add(ctx, customer, func(doc *document.Document, candidate *domain.Customer) error {
		if emailTaken(candidate.Email, "", doc.Customers) {
			return fmt.Errorf("%w: customer email %s", domain.ErrConflict, candidate.Email)
		}
		candidate.ID = freshID(r.idgen, customerIDPrefix, doc.Customers, customerID)
		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	r.logger.WithFields(log.Fields{"customer_id": added.ID}).Info("customer added")
	return added, nil
}

// Update заменяет только имя и email покупателя; остальные поля сохраняются.
func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if strings.TrimSpace(customer.Email) == "" {
		return domain.Customer{}, fmt.Errorf("%w: customer email is required", domain.ErrValidation)
	}

	updated, err := r.customers.update(ctx, customer.ID, func(doc *document.Document, current *domain.Customer) error {
		if emailTaken(customer.Email, current.ID, doc.Customers) {
			return fmt.Errorf("%w: customer email %s", domain.ErrConflict, customer.Email)
		}
		current.Name = customer.Name
		current.Email = customer.Email
		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	r.logger.WithFields(log.Fields{"customer_id": updated.ID}).Info("customer updated")
	return updated, nil
}

var _ domain.CustomerRepository = (*CustomerRepository)(nil)
