package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// APIKeyService validates service-to-service API keys. Keys are configured as
// bcrypt hashes mapped to the scopes each key grants.
type APIKeyService struct {
	keys []hashedKey
}

type hashedKey struct {
	name   string
	hash   []byte
	scopes []string
}

func NewAPIKeyService() *APIKeyService {
	return &APIKeyService{}
}

// RegisterKey adds a named key hash with its granted scopes.
func (s *APIKeyService) RegisterKey(name, bcryptHash string, scopes []string) {
	s.keys = append(s.keys, hashedKey{name: name, hash: []byte(bcryptHash), scopes: scopes})
}

// Validate checks a raw key against the registered hashes and returns the
// matching key's identity and scopes.
func (s *APIKeyService) Validate(rawKey string) (*Claims, error) {
	for _, k := range s.keys {
		if bcrypt.CompareHashAndPassword(k.hash, []byte(rawKey)) == nil {
			return &Claims{Subject: "apikey:" + k.name, Scopes: k.scopes}, nil
		}
	}
	return nil, ErrInvalidAPIKey()
}

// HashKey produces a bcrypt hash suitable for RegisterKey. Used by setup
// tooling, never on the request path.
func HashKey(rawKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
