package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/magabrotheeeer/appointment-scheduler/internal/cache"
	customjwt "github.com/magabrotheeeer/appointment-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/password"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	services "github.com/magabrotheeeer/appointment-scheduler/internal/services/auth"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpsertPendingUser(ctx context.Context, name, email, passwordHash string) (string, error) {
	args := m.Called(ctx, name, email, passwordHash)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) MarkVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserRepoMock) RegisterFailedLogin(ctx context.Context, userUID string, maxAttempts int, lockUntil time.Time) (int, error) {
	args := m.Called(ctx, userUID, maxAttempts, lockUntil)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) ResetLoginState(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *UserRepoMock) SetLoggedIn(ctx context.Context, userUID string, loggedIn bool) error {
	args := m.Called(ctx, userUID, loggedIn)
	return args.Error(0)
}

func (m *UserRepoMock) ClearSuspension(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *UserRepoMock) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

// Мок для SessionRepository
type SessionRepoMock struct {
	mock.Mock
}

func (m *SessionRepoMock) ReplaceSession(ctx context.Context, userUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userUID, token, expiresAt)
	return args.Error(0)
}

func (m *SessionRepoMock) HasValidSession(ctx context.Context, userUID string) (bool, error) {
	args := m.Called(ctx, userUID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepoMock) DeleteSessionByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Мок для OTPStore
type OTPStoreMock struct {
	mock.Mock
}

func (m *OTPStoreMock) SetOTP(ctx context.Context, purpose cache.Purpose, email, code string, ttl time.Duration) error {
	args := m.Called(ctx, purpose, email, code, ttl)
	return args.Error(0)
}

func (m *OTPStoreMock) GetOTP(ctx context.Context, purpose cache.Purpose, email string) (string, bool, error) {
	args := m.Called(ctx, purpose, email)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *OTPStoreMock) ClearOTP(ctx context.Context, purpose cache.Purpose, email string) error {
	args := m.Called(ctx, purpose, email)
	return args.Error(0)
}

// Мок для MailSender
type MailSenderMock struct {
	mock.Mock
}

func (m *MailSenderMock) SendOTPEmail(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID, role string) (string, error) {
	args := m.Called(userUID, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func defaultPolicy() services.Policy {
	return services.Policy{
		MaxLoginAttempts: 5,
		LockDuration:     10 * time.Minute,
		OTPTTL:           10 * time.Minute,
	}
}

func verifiedUser(t *testing.T, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		UID:          "user-uid-1",
		Name:         "Ivan",
		Email:        "ivan@example.com",
		PasswordHash: hash,
		Verified:     true,
		Role:         "user",
	}
}

func TestAuthService_Login(t *testing.T) {
	future := time.Now().Add(30 * time.Minute)
	past := time.Now().Add(-30 * time.Minute)

	tests := []struct {
		name       string
		password   string
		setupMocks func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock)
		wantToken  string
		wantKind   services.FailureKind
		wantErr    bool
	}{
		{
			name:     "successful login",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
				j.On("GenerateToken", "user-uid-1", "user").Return("signed-token", nil).Once()
				s.On("ReplaceSession", mock.Anything, "user-uid-1", "signed-token", mock.Anything).Return(nil).Once()
				u.On("ResetLoginState", mock.Anything, "user-uid-1").Return(nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "no such account",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(nil, repository.ErrNotFound).Once()
			},
			wantErr:  true,
			wantKind: services.FailNoSuchAccount,
		},
		{
			name:     "not verified",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				user.Verified = false
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
			},
			wantErr:  true,
			wantKind: services.FailNotVerified,
		},
		{
			name:     "suspended account is rejected before password check",
			password: "wrong-password",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				user.IsExpired = true
				user.ExpiresAt = &future
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
			},
			wantErr:  true,
			wantKind: services.FailSuspended,
		},
		{
			name:     "elapsed suspension is cleared and login continues",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				user.IsExpired = true
				user.ExpiresAt = &past
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
				u.On("ClearSuspension", mock.Anything, "user-uid-1").Return(nil).Once()
				j.On("GenerateToken", "user-uid-1", "user").Return("signed-token", nil).Once()
				s.On("ReplaceSession", mock.Anything, "user-uid-1", "signed-token", mock.Anything).Return(nil).Once()
				u.On("ResetLoginState", mock.Anything, "user-uid-1").Return(nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "already logged in with live session",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				user.IsLoggedIn = true
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
				s.On("HasValidSession", mock.Anything, "user-uid-1").Return(true, nil).Once()
			},
			wantErr:  true,
			wantKind: services.FailAlreadyLoggedIn,
		},
		{
			name:     "stale logged in flag without session is cleared",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				user.IsLoggedIn = true
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
				s.On("HasValidSession", mock.Anything, "user-uid-1").Return(false, nil).Once()
				u.On("SetLoggedIn", mock.Anything, "user-uid-1", false).Return(nil).Once()
				j.On("GenerateToken", "user-uid-1", "user").Return("signed-token", nil).Once()
				s.On("ReplaceSession", mock.Anything, "user-uid-1", "signed-token", mock.Anything).Return(nil).Once()
				u.On("ResetLoginState", mock.Anything, "user-uid-1").Return(nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "locked account rejects even correct password",
			password: "Password123",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				user.LockUntil = &future
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
			},
			wantErr:  true,
			wantKind: services.FailLocked,
		},
		{
			name:     "wrong password counts the attempt",
			password: "wrong-password",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
				u.On("RegisterFailedLogin", mock.Anything, "user-uid-1", 5, mock.Anything).Return(2, nil).Once()
			},
			wantErr:  true,
			wantKind: services.FailInvalidCredentials,
		},
		{
			name:     "fifth wrong password locks the account",
			password: "wrong-password",
			setupMocks: func(t *testing.T, u *UserRepoMock, s *SessionRepoMock, j *JwtMakerMock) {
				user := verifiedUser(t, "Password123")
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
				u.On("RegisterFailedLogin", mock.Anything, "user-uid-1", 5, mock.Anything).Return(5, nil).Once()
			},
			wantErr:  true,
			wantKind: services.FailLockedJustNow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(UserRepoMock)
			sessionRepo := new(SessionRepoMock)
			otpStore := new(OTPStoreMock)
			mailSender := new(MailSenderMock)
			jwtMaker := new(JwtMakerMock)
			tt.setupMocks(t, userRepo, sessionRepo, jwtMaker)

			svc := services.NewAuthService(userRepo, sessionRepo, otpStore, mailSender,
				jwtMaker, time.Hour, defaultPolicy())

			token, err := svc.Login(context.Background(), "ivan@example.com", tt.password)

			if tt.wantErr {
				require.Error(t, err)
				authErr, ok := services.AsAuthError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, authErr.Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
			userRepo.AssertExpectations(t)
			sessionRepo.AssertExpectations(t)
			jwtMaker.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_AttemptsLeftReported(t *testing.T) {
	userRepo := new(UserRepoMock)
	sessionRepo := new(SessionRepoMock)
	jwtMaker := new(JwtMakerMock)
	user := verifiedUser(t, "Password123")
	userRepo.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
	userRepo.On("RegisterFailedLogin", mock.Anything, "user-uid-1", 5, mock.Anything).Return(3, nil).Once()

	svc := services.NewAuthService(userRepo, sessionRepo, new(OTPStoreMock), new(MailSenderMock),
		jwtMaker, time.Hour, defaultPolicy())

	_, err := svc.Login(context.Background(), "ivan@example.com", "wrong-password")
	require.Error(t, err)
	authErr, ok := services.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, services.FailInvalidCredentials, authErr.Kind)
	assert.Equal(t, 2, authErr.AttemptsLeft)
}

func TestAuthService_SendRegistrationOTP(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		setupMocks func(u *UserRepoMock, o *OTPStoreMock, m *MailSenderMock)
		wantErr    error
	}{
		{
			name:     "success",
			password: "Password123",
			setupMocks: func(u *UserRepoMock, o *OTPStoreMock, m *MailSenderMock) {
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(nil, repository.ErrNotFound).Once()
				u.On("UpsertPendingUser", mock.Anything, "Ivan", "ivan@example.com", mock.Anything).Return("user-uid-1", nil).Once()
				o.On("SetOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com", mock.Anything, 10*time.Minute).Return(nil).Once()
				m.On("SendOTPEmail", "ivan@example.com", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:       "weak password rejected",
			password:   "short",
			setupMocks: func(u *UserRepoMock, o *OTPStoreMock, m *MailSenderMock) {},
			wantErr:    services.ErrWeakPassword,
		},
		{
			name:     "verified email is taken",
			password: "Password123",
			setupMocks: func(u *UserRepoMock, o *OTPStoreMock, m *MailSenderMock) {
				existing := &models.User{UID: "other", Email: "ivan@example.com", Verified: true}
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(existing, nil).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:     "mail failure wipes the code",
			password: "Password123",
			setupMocks: func(u *UserRepoMock, o *OTPStoreMock, m *MailSenderMock) {
				u.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(nil, repository.ErrNotFound).Once()
				u.On("UpsertPendingUser", mock.Anything, "Ivan", "ivan@example.com", mock.Anything).Return("user-uid-1", nil).Once()
				o.On("SetOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com", mock.Anything, 10*time.Minute).Return(nil).Once()
				m.On("SendOTPEmail", "ivan@example.com", mock.Anything).Return(assert.AnError).Once()
				o.On("ClearOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return(nil).Once()
			},
			wantErr: services.ErrMailDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(UserRepoMock)
			otpStore := new(OTPStoreMock)
			mailSender := new(MailSenderMock)
			tt.setupMocks(userRepo, otpStore, mailSender)

			svc := services.NewAuthService(userRepo, new(SessionRepoMock), otpStore, mailSender,
				new(JwtMakerMock), time.Hour, defaultPolicy())

			err := svc.SendRegistrationOTP(context.Background(), "Ivan", "ivan@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			userRepo.AssertExpectations(t)
			otpStore.AssertExpectations(t)
			mailSender.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyRegistrationOTP(t *testing.T) {
	t.Run("correct code verifies and opens session", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		sessionRepo := new(SessionRepoMock)
		otpStore := new(OTPStoreMock)
		jwtMaker := new(JwtMakerMock)

		user := verifiedUser(t, "Password123")
		otpStore.On("GetOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return("482913", true, nil).Once()
		otpStore.On("ClearOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return(nil).Once()
		userRepo.On("MarkVerified", mock.Anything, "ivan@example.com").Return(nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
		jwtMaker.On("GenerateToken", "user-uid-1", "user").Return("signed-token", nil).Once()
		sessionRepo.On("ReplaceSession", mock.Anything, "user-uid-1", "signed-token", mock.Anything).Return(nil).Once()
		userRepo.On("ResetLoginState", mock.Anything, "user-uid-1").Return(nil).Once()

		svc := services.NewAuthService(userRepo, sessionRepo, otpStore, new(MailSenderMock),
			jwtMaker, time.Hour, defaultPolicy())

		token, err := svc.VerifyRegistrationOTP(context.Background(), "ivan@example.com", "482913")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		otpStore.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong code is rejected and does not burn the stored code", func(t *testing.T) {
		otpStore := new(OTPStoreMock)
		otpStore.On("GetOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return("482913", true, nil).Once()

		svc := services.NewAuthService(new(UserRepoMock), new(SessionRepoMock), otpStore, new(MailSenderMock),
			new(JwtMakerMock), time.Hour, defaultPolicy())

		_, err := svc.VerifyRegistrationOTP(context.Background(), "ivan@example.com", "000000")
		require.Error(t, err)
		authErr, ok := services.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, services.FailInvalidOTP, authErr.Kind)
		otpStore.AssertNotCalled(t, "ClearOTP", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("correct code still works after a typo", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		sessionRepo := new(SessionRepoMock)
		otpStore := new(OTPStoreMock)
		jwtMaker := new(JwtMakerMock)

		user := verifiedUser(t, "Password123")
		otpStore.On("GetOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return("482913", true, nil).Twice()
		otpStore.On("ClearOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return(nil).Once()
		userRepo.On("MarkVerified", mock.Anything, "ivan@example.com").Return(nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "ivan@example.com").Return(user, nil).Once()
		jwtMaker.On("GenerateToken", "user-uid-1", "user").Return("signed-token", nil).Once()
		sessionRepo.On("ReplaceSession", mock.Anything, "user-uid-1", "signed-token", mock.Anything).Return(nil).Once()
		userRepo.On("ResetLoginState", mock.Anything, "user-uid-1").Return(nil).Once()

		svc := services.NewAuthService(userRepo, sessionRepo, otpStore, new(MailSenderMock),
			jwtMaker, time.Hour, defaultPolicy())

		_, err := svc.VerifyRegistrationOTP(context.Background(), "ivan@example.com", "000000")
		require.Error(t, err)

		token, err := svc.VerifyRegistrationOTP(context.Background(), "ivan@example.com", "482913")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		otpStore.AssertExpectations(t)
	})

	t.Run("missing code is rejected", func(t *testing.T) {
		otpStore := new(OTPStoreMock)
		otpStore.On("GetOTP", mock.Anything, cache.PurposeRegistration, "ivan@example.com").Return("", false, nil).Once()

		svc := services.NewAuthService(new(UserRepoMock), new(SessionRepoMock), otpStore, new(MailSenderMock),
			new(JwtMakerMock), time.Hour, defaultPolicy())

		_, err := svc.VerifyRegistrationOTP(context.Background(), "ivan@example.com", "482913")
		require.Error(t, err)
		authErr, ok := services.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, services.FailInvalidOTP, authErr.Kind)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("weak password does not burn the code", func(t *testing.T) {
		otpStore := new(OTPStoreMock)
		svc := services.NewAuthService(new(UserRepoMock), new(SessionRepoMock), otpStore, new(MailSenderMock),
			new(JwtMakerMock), time.Hour, defaultPolicy())

		err := svc.ResetPassword(context.Background(), "ivan@example.com", "482913", "short")
		assert.ErrorIs(t, err, services.ErrWeakPassword)
		otpStore.AssertNotCalled(t, "GetOTP", mock.Anything, mock.Anything, mock.Anything)
		otpStore.AssertNotCalled(t, "ClearOTP", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong code keeps the stored code for another attempt", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		otpStore := new(OTPStoreMock)
		otpStore.On("GetOTP", mock.Anything, cache.PurposeReset, "ivan@example.com").Return("482913", true, nil).Once()

		svc := services.NewAuthService(userRepo, new(SessionRepoMock), otpStore, new(MailSenderMock),
			new(JwtMakerMock), time.Hour, defaultPolicy())

		err := svc.ResetPassword(context.Background(), "ivan@example.com", "000000", "NewPassword123")
		require.Error(t, err)
		authErr, ok := services.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, services.FailInvalidOTP, authErr.Kind)
		otpStore.AssertNotCalled(t, "ClearOTP", mock.Anything, mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("correct code updates the hash", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		otpStore := new(OTPStoreMock)
		otpStore.On("GetOTP", mock.Anything, cache.PurposeReset, "ivan@example.com").Return("482913", true, nil).Once()
		otpStore.On("ClearOTP", mock.Anything, cache.PurposeReset, "ivan@example.com").Return(nil).Once()
		userRepo.On("UpdatePassword", mock.Anything, "ivan@example.com", mock.MatchedBy(func(hash string) bool {
			return password.CompareHash(hash, "NewPassword123") == nil
		})).Return(nil).Once()

		svc := services.NewAuthService(userRepo, new(SessionRepoMock), otpStore, new(MailSenderMock),
			new(JwtMakerMock), time.Hour, defaultPolicy())

		err := svc.ResetPassword(context.Background(), "ivan@example.com", "482913", "NewPassword123")
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestAuthService_Logout(t *testing.T) {
	userRepo := new(UserRepoMock)
	sessionRepo := new(SessionRepoMock)
	sessionRepo.On("DeleteSessionByToken", mock.Anything, "signed-token").Return(nil).Once()
	userRepo.On("SetLoggedIn", mock.Anything, "user-uid-1", false).Return(nil).Once()

	svc := services.NewAuthService(userRepo, sessionRepo, new(OTPStoreMock), new(MailSenderMock),
		new(JwtMakerMock), time.Hour, defaultPolicy())

	err := svc.Logout(context.Background(), "user-uid-1", "signed-token")
	require.NoError(t, err)
	sessionRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
