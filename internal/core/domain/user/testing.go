package user

import (
	"context"
	"crypto/md5"
	"fmt"
	c "gatekeeper/internal/core/domain/common"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

// FakeTokenAuthority issues "<prefix>:<userID>:<purpose>" strings and
// verifies them by parsing the same shape. Expiry is simulated via the
// Expired flag rather than wall clock time.
type FakeTokenAuthority struct {
	Prefix      string
	TTL         time.Duration
	Now         time.Time
	Expired     bool
	ReturnError bool
}

func NewFakeTokenAuthority(prefix string, now time.Time) *FakeTokenAuthority {
	return &FakeTokenAuthority{Prefix: prefix, TTL: time.Hour, Now: now}
}

func (a *FakeTokenAuthority) Issue(userID ID, purpose TokenPurpose) (string, TokenClaims, error) {
	if a.ReturnError {
		return "", TokenClaims{}, fmt.Errorf("could not issue token for user %d", userID)
	}
	claims := TokenClaims{
		UserID:    userID,
		Purpose:   purpose,
		IssuedAt:  a.Now,
		ExpiresAt: a.Now.Add(a.TTL),
	}
	return fmt.Sprintf("%s:%d:%s", a.Prefix, userID, purpose), claims, nil
}

func (a *FakeTokenAuthority) Verify(token string, purpose TokenPurpose) (claims TokenClaims, err error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != a.Prefix {
		return claims, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return claims, ErrInvalidToken
	}
	if a.Expired {
		return claims, ErrTokenExpired
	}
	if TokenPurpose(parts[2]) != purpose {
		return claims, ErrWrongTokenPurpose
	}
	return TokenClaims{
		UserID:    ID(userID),
		Purpose:   purpose,
		IssuedAt:  a.Now,
		ExpiresAt: a.Now.Add(a.TTL),
	}, nil
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input SetPasswordResetTokenInput,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.UserID {
			r.Users[ix].ResetToken = c.NewOptional(input.Token, true)
			r.Users[ix].ResetTokenExpiresAt = c.NewOptional(input.ExpiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) RedeemPasswordResetToken(
	ctx context.Context,
	input RedeemPasswordResetTokenInput,
) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID != input.UserID {
			continue
		}
		if !u.ResetToken.IsPresent || u.ResetToken.Value != input.Token {
			return u, ErrInvalidPasswordResetToken
		}
		if !u.ResetTokenExpiresAt.Value.After(input.Now) {
			return u, ErrInvalidPasswordResetToken
		}
		r.Users[ix].PasswordHash = input.NewPasswordHash
		r.Users[ix].ResetToken = c.NewOptional(PasswordResetToken(""), false)
		r.Users[ix].ResetTokenExpiresAt = c.NewOptional(time.Time{}, false)
		return r.Users[ix], nil
	}
	return u, ErrInvalidPasswordResetToken
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeWelcomeMessageSender struct {
	Sent        []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeWelcomeMessageSender() *FakeWelcomeMessageSender {
	return &FakeWelcomeMessageSender{}
}

func (s *FakeWelcomeMessageSender) SendWelcomeMessage(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send welcome message to user %v", user)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, user)
	return nil
}
