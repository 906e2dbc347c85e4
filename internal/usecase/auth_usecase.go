package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// AuthUsecase は会員登録とログインです。
// refresh tokenやセッション永続化はここでは扱わない。
type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewAuthUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthOutput struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// Register は会員登録してそのままログイン状態のトークンを返す。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(username) > 255 {
		return AuthOutput{}, NewValidationError("invalid username")
	}

	// passwordの長さチェック（最小6文字）
	if len(in.Password) < 6 {
		return AuthOutput{}, NewValidationError("password too short")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthOutput{}, NewStorageError("hash error")
	}

	now := u.clock.Now()
	user := &model.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return AuthOutput{}, NewConflictError("username already exists")
		}
		return AuthOutput{}, NewStorageError("db error")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return AuthOutput{}, NewStorageError("token error")
	}

	return AuthOutput{User: *user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Login はusername/passwordを検証してトークンを返す。
// どちらが違うかは教えない（同じメッセージにする）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return AuthOutput{}, NewValidationError("username and password are required")
	}

	user, err := u.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewValidationError("invalid username or password")
	}
	if err != nil {
		return AuthOutput{}, NewStorageError("db error")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return AuthOutput{}, NewValidationError("invalid username or password")
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return AuthOutput{}, NewStorageError("token error")
	}

	return AuthOutput{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}
