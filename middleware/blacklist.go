package middleware

import (
	"sync"
	"time"
)

// Blacklist holds revoked session tokens until they would have expired anyway.
// Logout adds to it; the auth middleware consults it on every request. The
// in-memory set is seeded from the revoked_tokens collection at startup so
// restarts do not silently un-invalidate logged-out tokens.
type Blacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: make(map[string]time.Time)}
}

// Revoke marks a token invalid until expiresAt.
func (b *Blacklist) Revoke(token string, expiresAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = expiresAt
}

// Contains reports whether the token is currently revoked. Expired entries
// are pruned on sight; an expired token fails signature checks regardless.
func (b *Blacklist) Contains(token string) bool {
	b.mu.RLock()
	expiresAt, ok := b.tokens[token]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		b.mu.Lock()
		delete(b.tokens, token)
		b.mu.Unlock()
		return false
	}
	return true
}

func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tokens)
}

// RevokedTokens is the process-wide blacklist consulted by AuthMiddleware.
var RevokedTokens = NewBlacklist()
