package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/jwt"
	"github.com/elmparc/plan_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("Email is already registered.")
	ErrUsernameExists     = errors.New("Username is already taken.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
)

type AuthService struct {
	userRepo *repository.UserRepository
	entRepo  *repository.EntitlementRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, entRepo *repository.EntitlementRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		entRepo:  entRepo,
		cfg:      cfg,
	}
}

// Register 用户注册，初始权益为 free
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	user := &model.User{
		Username:     req.Username,
		Email:        &req.Email,
		PasswordHash: &passwordStr,
		Focus:        model.FocusLateGame,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.entRepo.Create(&model.Entitlement{
		UserID: user.ID,
		Status: model.EntitlementFree,
		Source: "signup",
	}); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		UserID: user.ID,
	}, nil
}

// Login 用户登录，签发 token
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	return &dto.LoginResponse{
		Token: token,
		User: &dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    email,
			Focus:    user.Focus,
		},
	}, nil
}
