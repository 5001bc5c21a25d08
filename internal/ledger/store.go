// Package ledger persists customer ledgers as one CSV file per phone number.
//
// Every mutation follows the same contract: load a snapshot of the whole ledger,
// mutate the copy, then atomically overwrite the file (temp file + rename).
// There is no locking. Two writers to the same phone race and the last writer wins.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/kisankhidmat/khidmat/internal/models"
)

const fileExt = ".csv"

var (
	ErrNotFound        = errors.New("customer not found")
	ErrAlreadyExists   = errors.New("customer already exists")
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrInvalidPhone    = errors.New("invalid phone number")
)

// Store reads and writes ledger files under a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the ledger files.
func (s *Store) Dir() string {
	return s.dir
}

// ValidatePhone reports whether phone can be used as a ledger key.
// The key doubles as a file name, so separators and dot names are rejected.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPhone)
	}
	if phone == "." || phone == ".." || strings.ContainsAny(phone, `/\`) || strings.ContainsRune(phone, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return nil
}

func (s *Store) path(phone string) string {
	return filepath.Join(s.dir, phone+fileExt)
}

// Exists reports whether a ledger file exists for phone.
func (s *Store) Exists(phone string) (bool, error) {
	if err := ValidatePhone(phone); err != nil {
		return false, err
	}
	_, err := os.Stat(s.path(phone))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat ledger: %w", err)
}

// Load returns the transactions for phone in file order.
// A missing file yields an empty ledger and no error.
func (s *Store) Load(phone string) ([]models.Transaction, error) {
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(phone))
	if os.IsNotExist(err) {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	entries, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", phone, err)
	}
	return entries, nil
}

// Save overwrites the ledger for phone with entries, in full.
func (s *Store) Save(phone string, entries []models.Transaction) error {
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	data, err := encode(entries)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := renameio.WriteFile(s.path(phone), data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// Register creates an empty ledger for phone.
// Returns ErrAlreadyExists, leaving the file untouched, if one is present.
func (s *Store) Register(phone string) error {
	exists, err := s.Exists(phone)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	return s.Save(phone, nil)
}

// AddEntry appends txn to the ledger, creating the ledger if it does not exist.
func (s *Store) AddEntry(phone string, txn models.Transaction) ([]models.Transaction, error) {
	entries, err := s.Load(phone)
	if err != nil {
		return nil, err
	}
	entries = append(entries, txn)
	if err := s.Save(phone, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EditEntry replaces the row at index (0-based). The index is checked against
// the ledger as it is on disk now, not as it was when the caller last read it.
func (s *Store) EditEntry(phone string, index int, txn models.Transaction) ([]models.Transaction, error) {
	entries, err := s.Load(phone)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("%w: %d (ledger has %d rows)", ErrIndexOutOfRange, index, len(entries))
	}
	entries[index] = txn
	if err := s.Save(phone, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteLast removes the final row. On an empty ledger nothing is written and
// removed is false.
func (s *Store) DeleteLast(phone string) (entries []models.Transaction, removed bool, err error) {
	entries, err = s.Load(phone)
	if err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		slog.Warn("DeleteLast on empty ledger", "phone", phone)
		return entries, false, nil
	}
	entries = entries[:len(entries)-1]
	if err := s.Save(phone, entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Phones lists every phone with a ledger file, in file name order.
func (s *Store) Phones() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	var phones []string
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		phones = append(phones, strings.TrimSuffix(name, fileExt))
	}
	return phones, nil
}

// LoadAll loads every ledger, in the order returned by Phones.
func (s *Store) LoadAll() ([]models.CustomerLedger, error) {
	phones, err := s.Phones()
	if err != nil {
		return nil, err
	}
	ledgers := make([]models.CustomerLedger, 0, len(phones))
	for _, phone := range phones {
		entries, err := s.Load(phone)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, models.CustomerLedger{Phone: phone, Entries: entries})
	}
	return ledgers, nil
}
