package tokenauthority

import (
	"errors"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// JWT mints HMAC-SHA256 signed tokens carrying the user ID, a purpose and
// an expiry. Session and reset tokens share the signing key, the purpose
// claim keeps them from being used interchangeably.
type JWT struct {
	secretKey  []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

func NewJWT(secretKey string, sessionTTL, resetTTL time.Duration, now func() time.Time) *JWT {
	if secretKey == "" {
		panic(e.NewInvalidStateError("secretKey must not be empty"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &JWT{
		secretKey:  []byte(secretKey),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		now:        now,
	}
}

func (a *JWT) Issue(userID user.ID, purpose user.TokenPurpose) (string, user.TokenClaims, error) {
	issuedAt := a.now()
	expiresAt := issuedAt.Add(a.ttl(purpose))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		Purpose: string(purpose),
	})
	signed, err := token.SignedString(a.secretKey)
	if err != nil {
		return "", user.TokenClaims{}, err
	}
	return signed, user.TokenClaims{
		UserID:    userID,
		Purpose:   purpose,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *JWT) Verify(tokenString string, purpose user.TokenPurpose) (c user.TokenClaims, err error) {
	parsedClaims := &claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		parsedClaims,
		func(t *jwt.Token) (interface{}, error) { return a.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return c, user.ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return c, user.ErrInvalidToken
	}
	if user.TokenPurpose(parsedClaims.Purpose) != purpose {
		return c, user.ErrWrongTokenPurpose
	}
	if parsedClaims.IssuedAt == nil || parsedClaims.ExpiresAt == nil {
		return c, user.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(parsedClaims.Subject, 10, 64)
	if err != nil {
		return c, user.ErrInvalidToken
	}
	return user.TokenClaims{
		UserID:    user.ID(userID),
		Purpose:   purpose,
		IssuedAt:  parsedClaims.IssuedAt.Time,
		ExpiresAt: parsedClaims.ExpiresAt.Time,
	}, nil
}

func (a *JWT) ttl(purpose user.TokenPurpose) time.Duration {
	if purpose == user.TokenPurposeReset {
		return a.resetTTL
	}
	return a.sessionTTL
}
