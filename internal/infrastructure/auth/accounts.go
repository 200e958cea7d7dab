package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"prioritizer/pkg/filesystem"
)

var (
	// ErrAccountNotFound is returned when no account matches an identifier
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists is returned when registering a taken identifier
	ErrAccountExists = errors.New("account already exists")
)

// Account is a locally registered user
type Account struct {
	ID           string    `yaml:"id"`
	Identifier   string    `yaml:"identifier"`
	PasswordHash string    `yaml:"password_hash"`
	Created      time.Time `yaml:"created"`
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// AccountStore keeps accounts in a YAML file with bcrypt password hashes
type AccountStore struct {
	path string
	cost int
	mu   sync.Mutex
}

// NewAccountStore creates a store backed by path. cost is the bcrypt cost;
// values below bcrypt.MinCost use bcrypt.DefaultCost.
func NewAccountStore(path string, cost int) *AccountStore {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &AccountStore{path: path, cost: cost}
}

// Register adds an account for identifier; identifiers are matched case-insensitively
func (s *AccountStore) Register(identifier, secret string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}

	key := normalizeIdentifier(identifier)
	for _, a := range file.Accounts {
		if normalizeIdentifier(a.Identifier) == key {
			return nil, ErrAccountExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := Account{
		ID:           uuid.NewString(),
		Identifier:   strings.TrimSpace(identifier),
		PasswordHash: string(hash),
		Created:      time.Now(),
	}
	file.Accounts = append(file.Accounts, account)

	if err := s.write(file); err != nil {
		return nil, err
	}
	return &account, nil
}

// Authenticate returns the account when secret matches its password hash.
// A wrong password and an unknown identifier both yield ErrAccountNotFound.
func (s *AccountStore) Authenticate(identifier, secret string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}

	key := normalizeIdentifier(identifier)
	for _, a := range file.Accounts {
		if normalizeIdentifier(a.Identifier) != key {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(secret)); err != nil {
			return nil, ErrAccountNotFound
		}
		account := a
		return &account, nil
	}
	return nil, ErrAccountNotFound
}

func (s *AccountStore) read() (*accountsFile, error) {
	file := &accountsFile{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return file, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	return file, nil
}

func (s *AccountStore) write(file *accountsFile) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	if err := filesystem.SafeWrite(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	return nil
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
