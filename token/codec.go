package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/pkg/errors"
)

const (
	DefaultTTL    = time.Hour
	DefaultIssuer = "session-auth"
)

// Claims are the registered claims carried by a session token. Subject is
// the decimal user id.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the subject as a user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Codec creates and parses signed, time-bound session tokens.
type Codec struct {
	signer  Signer
	issuer  string
	ttl     time.Duration
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) {
		if issuer = strings.TrimSpace(issuer); issuer != "" {
			c.issuer = issuer
		}
	}
}

func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func NewCodec(signer Signer, opts ...CodecOption) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("token codec requires a signer")
	}
	c := &Codec{
		signer:  signer,
		issuer:  DefaultIssuer,
		ttl:     DefaultTTL,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL is the lifetime given to newly created tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Create issues a token whose subject is userID.
func (c *Codec) Create(userID int64) (string, error) {
	now := c.nowFunc()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}
	return c.signer.Sign(claims)
}

// Parse verifies raw and returns its claims. Every failure wraps
// ErrInvalidToken.
func (c *Codec) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, autherrors.Wrapf(autherrors.ErrInvalidToken, "empty token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, c.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.nowFunc),
	)
	if err != nil {
		return nil, autherrors.Mark(err, autherrors.ErrInvalidToken)
	}
	if !parsed.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, autherrors.Mark(errors.Wrapf(err, "subject %q", claims.Subject), autherrors.ErrInvalidToken)
	}
	return claims, nil
}
