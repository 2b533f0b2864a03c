package media

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalStore is an in-process stand-in for the object storage holding
// session images. It hands out expiring HMAC-signed URLs the same way
// the production store signs its listings; booking code only sees the
// MediaStore interface.
type LocalStore struct {
	baseURL string
	secret  []byte
	ttl     time.Duration

	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewLocalStore(baseURL, secret string, ttl time.Duration) *LocalStore {
	return &LocalStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
		ttl:     ttl,
		keys:    make(map[string]struct{}),
	}
}

// Put registers a new object under prefix and returns its key.
func (s *LocalStore) Put(ctx context.Context, prefix string) (string, error) {
	key := prefix + uuid.NewString()

	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()

	return key, nil
}

func (s *LocalStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0)
	for key := range s.keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SignedURL returns a time-limited URL for the key.
func (s *LocalStore) SignedURL(ctx context.Context, key string) (string, error) {
	expires := time.Now().Add(s.ttl).Unix()
	return fmt.Sprintf("%s/%s?expires=%d&signature=%s", s.baseURL, key, expires, s.sign(key, expires)), nil
}

func (s *LocalStore) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
