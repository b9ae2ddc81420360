package pickup_token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const TypePickup = "pickup"

var (
	ErrMalformed        = errors.New("malformed pickup token")
	ErrInvalidSignature = errors.New("invalid pickup token signature")
	ErrExpired          = errors.New("pickup token expired")
)

// Payload форма зафиксирована: сканер курьера читает именно эти поля.
type Payload struct {
	OrderID   string `json:"orderId"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

func NewPayload(orderID string, issuedAt time.Time) Payload {
	return Payload{
		OrderID:   orderID,
		Type:      TypePickup,
		Timestamp: issuedAt.UnixMilli(),
	}
}

func (p Payload) IssuedAt() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// Signer подписывает payload HMAC-SHA256: base64url(json) + "." + base64url(mac).
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner: ttl == 0 отключает проверку срока жизни.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Signer) Encode(payload Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal pickup payload: %w", err)
	}

	body := base64.RawURLEncoding.EncodeToString(raw)
	signature := base64.RawURLEncoding.EncodeToString(s.sign([]byte(body)))

	return body + "." + signature, nil
}

func (s *Signer) Decode(token string) (*Payload, error) {
	body, signature, found := strings.Cut(strings.TrimSpace(token), ".")
	if !found || body == "" || signature == "" {
		return nil, ErrMalformed
	}

	mac, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return nil, ErrMalformed
	}
	if !hmac.Equal(mac, s.sign([]byte(body))) {
		return nil, ErrInvalidSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrMalformed
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if s.ttl > 0 && s.now().Sub(payload.IssuedAt()) > s.ttl {
		return nil, ErrExpired
	}

	return &payload, nil
}

func (s *Signer) sign(body []byte) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write(body)
	return h.Sum(nil)
}
