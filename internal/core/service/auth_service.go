package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

const minPasswordLen = 8

// LoginThrottle limits login attempts per username (Redis-backed).
type LoginThrottle interface {
	// Hit records one attempt and reports whether the caller is over the
	// limit for the current window.
	Hit(ctx context.Context, username string) (bool, error)
	// Clear resets the counter after a successful login.
	Clear(ctx context.Context, username string) error
}

// dummyHash is compared against when the username does not exist, so the
// unknown-user and wrong-password paths take comparable time and return
// the identical error. It must use the same cost as real hashes or the
// timing difference gives the username away.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credential-pad"), bcrypt.DefaultCost)

// AuthService implements registration, login, and role changes.
type AuthService struct {
	repo     ports.AuthRepository
	issuer   *token.Issuer
	throttle LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, issuer *token.Issuer, throttle LoginThrottle, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, audit: audit, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	var issues domain.ValidationIssues
	if in.Username == "" {
		issues = issues.Issue("username", "is required")
	}
	if len(in.Password) < minPasswordLen {
		issues = issues.Issue("password", "must be at least 8 characters")
	}
	role, roleErr := domain.ParseRole(in.Role)
	if roleErr != nil {
		issues = issues.Issue("role", "must be one of Admin, Author, Reader")
	}
	if err := issues.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(in.Username, domain.AuditActionRegister, "", domain.AuditOutcomeOK)
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		over, err := s.throttle.Hit(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, proceeding")
		} else if over {
			s.record(username, domain.AuditActionLogin, "", domain.AuditOutcomeDenied)
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error and comparable cost as a wrong password, so the
			// response cannot be used to enumerate usernames.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.record(username, domain.AuditActionLogin, "", domain.AuditOutcomeDenied)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(username, domain.AuditActionLogin, "", domain.AuditOutcomeDenied)
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Clear(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to clear login throttle")
		}
	}

	s.record(username, domain.AuditActionLogin, "", domain.AuditOutcomeOK)
	s.log.Info().Str("username", username).Str("role", string(user.Role)).Msg("login succeeded")
	return signed, user, nil
}

// ChangeRole updates the target user's role via a compare-and-set on the
// store. The Admin role check happens upstream; this method only owns the
// atomic update and its conflict semantics.
func (s *AuthService) ChangeRole(ctx context.Context, actor, targetID, newRole string) error {
	role, err := domain.ParseRole(newRole)
	if err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == role {
		return nil
	}

	if err := s.repo.UpdateRole(ctx, targetID, target.Role, role); err != nil {
		s.record(actor, domain.AuditActionRoleChange, targetID, domain.AuditOutcomeError)
		return err
	}

	s.record(actor, domain.AuditActionRoleChange, targetID, domain.AuditOutcomeOK)
	s.log.Info().
		Str("actor", actor).
		Str("target_id", targetID).
		Str("new_role", string(role)).
		Msg("role changed")
	return nil
}

func (s *AuthService) record(actor, action, target, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}
