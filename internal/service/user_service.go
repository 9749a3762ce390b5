package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/events"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// RoleInvalidator drops cached role lookups after a role-store mutation.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// UserService coordinates the role store.
type UserService struct {
	users       repository.UserRepository
	invalidator RoleInvalidator
	dispatcher  events.Dispatcher
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo    repository.UserRepository
	Invalidator RoleInvalidator
	Dispatcher  events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:       deps.UserRepo,
		invalidator: deps.Invalidator,
		dispatcher:  deps.Dispatcher,
	}
}

// Register creates a role-store record for an email. Registration is
// idempotent: an existing email is returned untouched with created=false.
// The server stamps the role and creation time, ignoring client-supplied
// values, so nobody self-escalates at signup.
func (s *UserService) Register(ctx context.Context, email, name string) (*domain.User, bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, false, apperrors.NewValidationError("email required", nil)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.NewUpstreamFailure(err)
	}

	user := &domain.User{
		Email:   email,
		Name:    strings.TrimSpace(name),
		Role:    domain.RoleUser,
		IsFraud: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration may win the insert between the
		// existence check and here; treat the unique violation as the
		// duplicate it is.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			existing, getErr := s.users.GetByEmail(ctx, email)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventUserRegistered,
		EntityID:   user.ID,
		ActorEmail: email,
		Payload:    events.UserRegisteredPayload{Email: email, Role: user.Role},
	})
	return user, true, nil
}

// RoleOf returns the role for an email, defaulting to user when unknown.
func (s *UserService) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoleUser, nil
		}
		return "", apperrors.MapError(err)
	}
	return user.Role, nil
}

// List returns the full role store.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Patch applies a partial update to a role-store record. Any subset of
// fields is applied atomically; cached role lookups are invalidated.
func (s *UserService) Patch(ctx context.Context, id string, patch repository.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("no fields to update", nil)
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *patch.Role})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.users.Patch(ctx, id, patch); err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, user.Email)
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventUserPatched,
		EntityID:   id,
		ActorEmail: user.Email,
		Payload:    events.UserRegisteredPayload{Email: updated.Email, Role: updated.Role},
	})
	return updated, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
