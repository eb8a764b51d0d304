package service

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/repository"
)

var (
	ErrInvalidEmail = errors.New("Please enter a valid email.")
)

// 与前端一致的宽松校验
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 登记结果
const (
	SignupCreated = "created"
	SignupExists  = "exists"
)

type WaitlistService struct {
	waitlistRepo *repository.WaitlistRepository
}

func NewWaitlistService(waitlistRepo *repository.WaitlistRepository) *WaitlistService {
	return &WaitlistService{waitlistRepo: waitlistRepo}
}

// Signup 登记等待名单。重复登记与并发插入冲突都归一化为 exists。
func (s *WaitlistService) Signup(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}

	exists, err := s.waitlistRepo.ExistsByEmail(email)
	if err != nil {
		return "", err
	}
	if exists {
		return SignupExists, nil
	}

	if err := s.waitlistRepo.Create(&model.WaitlistSignup{Email: email}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return SignupExists, nil
		}
		return "", err
	}

	return SignupCreated, nil
}
