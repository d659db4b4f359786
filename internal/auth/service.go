package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword is returned by Login when the password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// TokenStore issues, verifies and revokes session tokens.
type TokenStore interface {
	Issue() (string, error)
	Verify(token string) bool
	Revoke(token string)
}

// MemoryTokenStore keeps tokens in a mutex-guarded expiring map. Tokens are
// random 32-byte hex strings; expired entries are evicted on verification.
// Everything is lost on restart, which is fine for a single-operator tool.
type MemoryTokenStore struct {
	ttl time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{ttl: ttl, tokens: make(map[string]time.Time)}
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func (s *MemoryTokenStore) Issue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryTokenStore) Verify(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(s.tokens, token)
		return false
	}
	return true
}

func (s *MemoryTokenStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Service gates token issuance behind the admin password.
type Service interface {
	Login(password string) (string, error)
	Tokens() TokenStore
}

type service struct {
	password     string
	passwordHash string
	store        TokenStore
}

// NewService builds the auth service. When passwordHash (bcrypt) is set it
// takes precedence over the plain password.
func NewService(password, passwordHash string, store TokenStore) *service {
	return &service{password: password, passwordHash: passwordHash, store: store}
}

var _ Service = (*service)(nil)

func (s *service) Login(password string) (string, error) {
	if !s.check(password) {
		return "", ErrInvalidPassword
	}
	return s.store.Issue()
}

func (s *service) check(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	if s.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}

func (s *service) Tokens() TokenStore {
	return s.store
}
