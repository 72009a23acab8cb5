package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/gin-gonic/gin"
)

const nonceTTL = 5 * time.Minute

// NonceStore 一次性登录随机数，过期或用过即失效
type NonceStore struct {
	mu     sync.Mutex
	clock  quartz.Clock
	ttl    time.Duration
	issued map[string]time.Time
}

func NewNonceStore(clock quartz.Clock, ttl time.Duration) *NonceStore {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if ttl <= 0 {
		ttl = nonceTTL
	}
	return &NonceStore{clock: clock, ttl: ttl, issued: make(map[string]time.Time)}
}

func generateNonce() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *NonceStore) Issue() (string, error) {
	nonce, err := generateNonce()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	for n, exp := range s.issued {
		if now.After(exp) {
			delete(s.issued, n)
		}
	}
	s.issued[nonce] = now.Add(s.ttl)
	return nonce, nil
}

// Consume 防重放：无论成功与否都删除
func (s *NonceStore) Consume(nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.issued[nonce]
	delete(s.issued, nonce)
	return ok && !s.clock.Now().After(exp)
}

// GET|POST /auth/nonce
func (h *Handler) Nonce(c *gin.Context) {
	nonce, err := h.nonces.Issue()
	if err != nil {
		h.log.Error("nonce generation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate nonce"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonce": nonce, "message": SignMessage(nonce)})
}
