package service

import (
	"context"
	"errors"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/generator"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"gorm.io/gorm"
)

const (
	verificationCodeLength = 6
	verificationCodeTTL    = 15 * time.Minute
	userCacheTTL           = 5 * time.Minute
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

type userCache interface {
	Get(ctx context.Context, userID string) (*entity.User, error)
	Set(ctx context.Context, user *entity.User, expiration time.Duration)
	Clear(ctx context.Context, userID string)
}

type codeStorage interface {
	Get(ctx context.Context, subjectID string) (string, error)
	Set(ctx context.Context, subjectID string, code string, expiration time.Duration)
	Clear(ctx context.Context, subjectID string)
}

type identityProvider interface {
	CreateUser(ctx context.Context, email, username, password string) (string, error)
	DeleteUser(ctx context.Context, subjectID string) error
	MarkEmailVerified(ctx context.Context, subjectID string) error
}

type UserService struct {
	userStorage UserStorage
	userCache   userCache
	codes       codeStorage
	identity    identityProvider
	publisher   *Publisher
	preferences *PreferenceService
	logger      *types.Logger
}

func NewUserService(
	userStorage UserStorage,
	userCache userCache,
	codes codeStorage,
	identity identityProvider,
	publisher *Publisher,
	preferences *PreferenceService,
	logger *types.Logger,
) *UserService {
	return &UserService{
		userStorage: userStorage,
		userCache:   userCache,
		codes:       codes,
		identity:    identity,
		publisher:   publisher,
		preferences: preferences,
		logger:      logger,
	}
}

// Register creates the subject at the identity provider, mirrors it locally,
// seeds the default notification preferences and emits the registration and
// email-verification events. The events are best-effort: the created user is
// never rolled back on publish failure.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*entity.User, error) {
	subjectID, err := s.identity.CreateUser(ctx, email, username, password)
	if err != nil {
		return nil, err
	}

	user, err := s.userStorage.Create(ctx, &entity.User{
		ID:       subjectID,
		Email:    email,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	if _, errPref := s.preferences.Get(ctx, user.ID); errPref != nil {
		s.logger.Warnf("failed to seed preferences for %s: %v", user.ID, errPref)
	}

	code, err := generator.NumericCode(verificationCodeLength)
	if err != nil {
		return nil, err
	}
	s.codes.Set(ctx, user.ID, code, verificationCodeTTL)

	s.publisher.UserRegistered(ctx, user.ID, user.Email)
	s.publisher.EmailVerificationRequested(ctx, user.ID, user.Email, code)

	return user, nil
}

// Get reads through the cache with a fixed TTL.
func (s *UserService) Get(ctx context.Context, userID string) (*entity.User, error) {
	if cached, _ := s.userCache.Get(ctx, userID); cached != nil {
		return cached, nil
	}

	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}

	s.userCache.Set(ctx, user, userCacheTTL)
	return user, nil
}

// VerifyEmail checks the emailed code, marks the address verified locally and
// at the provider, and emits EMAIL_VERIFIED.
func (s *UserService) VerifyEmail(ctx context.Context, userID, code string) error {
	stored, err := s.codes.Get(ctx, userID)
	if err != nil || stored != code {
		return errorz.ErrInvalidInput
	}

	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	if _, err = s.userStorage.Update(ctx, user); err != nil {
		return err
	}
	s.userCache.Clear(ctx, userID)
	s.codes.Clear(ctx, userID)

	if errIdentity := s.identity.MarkEmailVerified(ctx, userID); errIdentity != nil {
		s.logger.Errorf("failed to mark %s verified at identity provider: %v", userID, errIdentity)
	}

	s.publisher.EmailVerified(ctx, userID, user.Email)
	return nil
}

// RequestPasswordReset generates a reset code and hands it to the email
// pipeline. An unknown email is reported as not found to the caller of this
// synchronous read path.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotFound
		}
		return err
	}

	code, err := generator.NumericCode(verificationCodeLength)
	if err != nil {
		return err
	}
	s.codes.Set(ctx, user.ID, code, verificationCodeTTL)

	s.publisher.PasswordResetRequested(ctx, user.ID, user.Email, code)
	return nil
}

// Delete removes the user at the provider and locally; dependent rows cascade.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userStorage.Delete(ctx, userID); err != nil {
		return err
	}
	s.userCache.Clear(ctx, userID)

	s.publisher.UserDeleted(ctx, userID)
	return nil
}
