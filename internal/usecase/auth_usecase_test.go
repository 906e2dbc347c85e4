package usecase_test

import (
	"context"
	"testing"
	"time"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
	"revorz/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// フェイク部品
// =====================

type fakeHasher struct{}

func (f *fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fakeVerifier struct{}

func (f *fakeVerifier) Verify(plain string, hashed string) bool {
	return hashed == "hashed:"+plain
}

type fakeIssuer struct{}

func (f *fakeIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "token", now.Add(time.Hour), nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newAuthUsecase() (*usecase.AuthUsecase, *UserRepoMock) {
	userRepo := new(UserRepoMock)
	clock := &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	uc := usecase.NewAuthUsecase(userRepo, &fakeHasher{}, &fakeVerifier{}, &fakeIssuer{}, clock)
	return uc, userRepo
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_Validation(t *testing.T) {
	uc, _ := newAuthUsecase()

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Username: "  ", Password: "secret1"})
	assertAppErrorKind(t, err, usecase.KindValidation)

	_, err = uc.Register(context.Background(), usecase.RegisterInput{Username: "alice", Password: "short"})
	assertAppErrorKind(t, err, usecase.KindValidation)
}

func TestAuthUsecase_Register_DuplicateUsername(t *testing.T) {
	uc, userRepo := newAuthUsecase()

	userRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Username: "alice", Password: "secret1"})
	assertAppErrorKind(t, err, usecase.KindConflict)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	uc, userRepo := newAuthUsecase()

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 平文は保存しない
		return u.Username == "alice" && u.PasswordHash == "hashed:secret1" && u.Role == model.RoleUser
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{Username: " alice ", Password: "secret1"})
	assert.NoError(t, err)
	assert.Equal(t, "alice", out.User.Username)
	assert.Equal(t, "token", out.AccessToken)

	userRepo.AssertExpectations(t)
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	uc, userRepo := newAuthUsecase()

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Username: "ghost", Password: "secret1"})
	ae, ok := usecase.AsAppError(err)
	assert.True(t, ok)
	// どちらが違うかは教えない
	assert.Equal(t, "invalid username or password", ae.Message)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc, userRepo := newAuthUsecase()

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(model.User{
		ID: 1, Username: "alice", PasswordHash: "hashed:secret1", Role: model.RoleUser,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Username: "alice", Password: "wrong"})
	ae, ok := usecase.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid username or password", ae.Message)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, userRepo := newAuthUsecase()

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(model.User{
		ID: 1, Username: "alice", PasswordHash: "hashed:secret1", Role: model.RoleUser,
	}, nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{Username: "alice", Password: "secret1"})
	assert.NoError(t, err)
	assert.Equal(t, "token", out.AccessToken)
	assert.Equal(t, int64(1), out.User.ID)
}

// bcryptの実装そのもの
func TestBcryptHasherAndVerifier(t *testing.T) {
	hasher := usecase.NewBcryptPasswordHasher(4)
	verifier := usecase.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.True(t, verifier.Verify("secret1", hashed))
	assert.False(t, verifier.Verify("wrong", hashed))
}
