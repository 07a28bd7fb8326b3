// Package document реализует хранилище единого JSON-документа каталога.
// Документ — единица атомарности: каждая мутация читает его целиком и
// записывает целиком обратно под эксклюзивной секцией.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/metrics"
)

// Document — сериализуемый агрегат всех трёх коллекций каталога.
type Document struct {
	Products  []domain.Product  `json:"products"`
	Orders    []domain.Order    `json:"orders"`
	Customers []domain.Customer `json:"customers"`
}

const (
	// Количество повторов при временных ошибках файлового ввода-вывода.
	// Ошибки формата не повторяются никогда.
	ioRetries = 3
	// Пауза между повторами и шаг опроса файловой блокировки.
	retryDelay = 25 * time.Millisecond
)

// Store владеет файлом документа и является единственной точкой сериализации.
// Внутрипроцессные вызовы координируются через sync.RWMutex, межпроцессные —
// через advisory-блокировку сайдкар-файла "<path>.lock", поэтому один файл
// могут разделять несколько процессов.
type Store struct {
	path    string
	mu      sync.RWMutex
	flk     *flock.Flock
	logger  *log.Entry
	metrics *metrics.StoreMetrics
}

// New создаёт хранилище поверх файла path. Отсутствующий файл — нормальное
// состояние первого запуска: Load вернёт пустой документ.
func New(path string, logger *log.Entry, m *metrics.StoreMetrics) *Store {
	if logger == nil {
		logger = log.WithField("component", "document-store")
	}
	return &Store{
		path:    path,
		flk:     flock.New(path + ".lock"),
		logger:  logger,
		metrics: m,
	}
}

// Path возвращает путь к файлу документа.
func (s *Store) Path() string {
	return s.path
}

// Exclusive выполняет полный цикл load→mutate→save под эксклюзивной секцией.
// Callback возвращает признак фиксации: при commit=false (или ошибке) документ
// не записывается, частичных записей не бывает. Отмена контекста до захвата
// секции прерывает операцию без побочных эффектов; после успешной записи
// отмена ничего не откатывает — запись и есть точка фиксации.
func (s *Store) Exclusive(ctx context.Context, fn func(doc *Document) (commit bool, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.flk.TryLockContext(ctx, retryDelay); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer s.unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	commit, err := fn(&doc)
	if err != nil || !commit {
		return err
	}
	return s.write(&doc)
}

// Shared выполняет чтение документа под разделяемой секцией. Писатель,
// удерживающий эксклюзивную секцию, исключает читателей, поэтому документ
// посреди мутации наблюдать невозможно.
func (s *Store) Shared(ctx context.Context, fn func(doc Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.flk.TryRLockContext(ctx, retryDelay); err != nil {
		return fmt.Errorf("acquire shared file lock: %w", err)
	}
	defer s.unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Load возвращает текущий документ под разделяемой секцией.
func (s *Store) Load(ctx context.Context) (Document, error) {
	var doc Document
	err := s.Shared(ctx, func(current Document) error {
		doc = current
		return nil
	})
	return doc, err
}

// Save заменяет документ целиком под эксклюзивной секцией.
func (s *Store) Save(ctx context.Context, doc Document) error {
	return s.Exclusive(ctx, func(current *Document) (bool, error) {
		*current = doc
		return true, nil
	})
}

func (s *Store) unlock() {
	if err := s.flk.Unlock(); err != nil {
		s.logger.WithError(err).Warn("failed to release file lock")
	}
}

// read загружает документ с диска. Отсутствие файла — пустой документ,
// непарсящееся содержимое — domain.ErrFormat; пустой документ из него
// не делается никогда.
func (s *Store) read() (Document, error) {
	started := time.Now()

	data, err := s.readFileRetry()
	if err != nil {
		s.metrics.RecordLoad(time.Since(started), err)
		return Document{}, err
	}
	if data == nil {
		// Первый запуск: файла ещё нет.
		s.metrics.RecordLoad(time.Since(started), nil)
		return Document{}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		err = fmt.Errorf("%w: %s: %v", domain.ErrFormat, s.path, err)
		s.metrics.RecordLoad(time.Since(started), err)
		return Document{}, err
	}

	s.metrics.RecordLoad(time.Since(started), nil)
	return doc, nil
}

// readFileRetry читает файл с ограниченным числом повторов на случай
// кратковременных сбоев ввода-вывода. Возвращает nil без ошибки, если файла нет.
func (s *Store) readFileRetry() ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < ioRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}
		data, err := os.ReadFile(s.path)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		lastErr = err
		s.logger.WithError(err).WithField("attempt", attempt+1).Warn("document read failed, retrying")
	}
	return nil, fmt.Errorf("read document %s: %w", s.path, lastErr)
}

// write сериализует документ и атомарно подменяет файл: запись во временный
// файл в том же каталоге, fsync, затем rename поверх цели. Читатель никогда
// не видит частично записанный документ.
func (s *Store) write(doc *Document) error {
	started := time.Now()
	err := s.writeAtomic(doc)
	s.metrics.RecordSave(time.Since(started), err)
	return err
}

func (s *Store) writeAtomic(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
