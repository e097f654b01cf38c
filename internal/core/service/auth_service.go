package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
	"github.com/pabloab/zapatillas-api/internal/pkg/metrics"
)

// dummyPassword is hashed once so that logins for unknown usernames cost the
// same verification work as logins for real ones.
const dummyPassword = "zapatillas-timing-equaliser"

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.AccountRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	events   ports.AccountEventRecorder
	log      zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthOption configures optional AuthService collaborators.
type AuthOption func(*AuthService)

// WithLoginThrottle enables failed-login throttling.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithEventRecorder sends audit events to r.
func WithEventRecorder(r ports.AccountEventRecorder) AuthOption {
	return func(s *AuthService) { s.events = r }
}

func NewAuthService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		events: discardEvents{},
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Password != in.PasswordConfirmation {
		metrics.RegistrationsTotal.WithLabelValues("password_mismatch").Inc()
		return nil, domain.ErrPasswordMismatch
	}

	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		if errors.Is(err, domain.ErrDuplicateCredential) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	account := &domain.Account{
		ID:           ulid.Make().String(),
		Username:     in.Username,
		Email:        in.Email,
		Nombre:       in.Nombre,
		Apellidos:    in.Apellidos,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	// Hashing is slow; a caller that gave up meanwhile must not end up with an account.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateCredential) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("username", account.Username).Str("account_id", account.ID).Msg("account registered")
	s.events.Record(domain.AccountEvent{Type: domain.EventRegistered, Username: account.Username, OccurredAt: now})

	return &ports.AuthResult{Account: account, Token: token}, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		return domain.ErrDuplicateUsername
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("register: check email: %w", err)
	}
	if taken {
		return domain.ErrDuplicateEmail
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, cred ports.Credentials) (*ports.AuthResult, error) {
	if s.throttled(ctx, cred.Username) {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		s.events.Record(domain.AccountEvent{Type: domain.EventLoginThrottled, Username: cred.Username, OccurredAt: s.now().UTC()})
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.repo.FindByUsername(ctx, cred.Username)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("login: %w", err)
	}

	if account == nil {
		s.hasher.Verify(cred.Password, s.timingHash())
		return nil, s.loginFailed(ctx, cred.Username, "unknown_user")
	}

	if !s.hasher.Verify(cred.Password, account.PasswordHash) {
		return nil, s.loginFailed(ctx, cred.Username, "bad_password")
	}
	if account.Disabled {
		return nil, s.loginFailed(ctx, cred.Username, "disabled")
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, account.Username); err != nil {
			s.log.Warn().Err(err).Str("username", account.Username).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.events.Record(domain.AccountEvent{Type: domain.EventLoginSucceeded, Username: account.Username, OccurredAt: s.now().UTC()})

	return &ports.AuthResult{Account: account, Token: token}, nil
}

// loginFailed records the real reason server-side and returns the generic error.
func (s *AuthService) loginFailed(ctx context.Context, username, reason string) error {
	metrics.LoginsTotal.WithLabelValues(reason).Inc()
	s.log.Info().Str("username", username).Str("reason", reason).Msg("login rejected")
	s.events.Record(domain.AccountEvent{
		Type:       domain.EventLoginFailed,
		Username:   username,
		OccurredAt: s.now().UTC(),
		Detail:     reason,
	})

	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		}
	}
	return domain.ErrInvalidCredentials
}

// throttled fails open when the throttle store is unavailable.
func (s *AuthService) throttled(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, allowing attempt")
		return false
	}
	return blocked
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not prepare timing hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

type discardEvents struct{}

func (discardEvents) Record(domain.AccountEvent) {}
