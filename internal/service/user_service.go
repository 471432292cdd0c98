package service

import (
	"context"
	"strings"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"
)

// UserService 账号资料与后台账号管理服务
type UserService struct {
	accountRepo    repository.AccountRepository
	profileRepo    repository.UserProfileRepository
	restaurantRepo repository.RestaurantRepository
}

// NewUserService 创建账号服务
func NewUserService(
	accountRepo repository.AccountRepository,
	profileRepo repository.UserProfileRepository,
	restaurantRepo repository.RestaurantRepository,
) *UserService {
	return &UserService{
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		restaurantRepo: restaurantRepo,
	}
}

// AccountProfile 账号资料视图
type AccountProfile struct {
	Account    *models.Account     `json:"account"`
	Profile    *models.UserProfile `json:"profile,omitempty"`
	Restaurant *models.Restaurant  `json:"restaurant,omitempty"`
}

// UpdateProfileInput 资料更新输入，nil 表示不修改
type UpdateProfileInput struct {
	Username *string
	Phone    *string
	FullName *string
	Address  *string
	Avatar   *string
}

func (in UpdateProfileInput) isEmpty() bool {
	return in.Username == nil && in.Phone == nil && in.FullName == nil && in.Address == nil && in.Avatar == nil
}

// GetProfile 获取当前账号资料
func (s *UserService) GetProfile(accountID uint) (*AccountProfile, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return s.buildProfile(account)
}

// UpdateProfile 更新当前账号资料
func (s *UserService) UpdateProfile(accountID uint, input UpdateProfileInput) (*AccountProfile, error) {
	if input.isEmpty() {
		return nil, ErrProfileEmpty
	}
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}

	if input.Username != nil {
		account.Username = strings.TrimSpace(*input.Username)
	}
	if input.Phone != nil {
		account.Phone = strings.TrimSpace(*input.Phone)
	}
	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}

	if account.RoleCode() == constants.RoleCustomer {
		profile, err := s.profileRepo.GetByAccountID(account.ID)
		if err != nil {
			return nil, err
		}
		created := profile == nil
		if created {
			profile = &models.UserProfile{AccountID: account.ID}
		}
		if input.FullName != nil {
			profile.FullName = strings.TrimSpace(*input.FullName)
		}
		if input.Address != nil {
			profile.Address = strings.TrimSpace(*input.Address)
		}
		if input.Avatar != nil {
			profile.Avatar = strings.TrimSpace(*input.Avatar)
		}
		if input.Phone != nil {
			profile.Phone = account.Phone
		}
		if created {
			err = s.profileRepo.Create(profile)
		} else {
			err = s.profileRepo.Update(profile)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.buildProfile(account)
}

// AdminList 后台账号列表
func (s *UserService) AdminList(filter repository.AccountListFilter) ([]models.Account, int64, error) {
	filter.Role = strings.ToUpper(strings.TrimSpace(filter.Role))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.accountRepo.List(filter)
}

// AdminGet 后台账号详情
func (s *UserService) AdminGet(id uint) (*AccountProfile, error) {
	return s.GetProfile(id)
}

// AdminUpdateStatus 后台启用/禁用账号，禁用后已签发 Token 立即失效
func (s *UserService) AdminUpdateStatus(actor Actor, id uint, status string) (*models.Account, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.AccountStatusActive && status != constants.AccountStatusDisabled {
		return nil, ErrAccountStatusInvalid
	}
	if status == constants.AccountStatusDisabled && actor.AccountID == id {
		return nil, ErrCannotDisableSelf
	}
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	if err := s.accountRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	if err := cache.DelAccountAuthState(context.Background(), id); err != nil {
		logger.Warnw("user_auth_state_invalidate_failed", "account_id", id, "error", err)
	}
	logger.Infow("user_status_updated", "account_id", id, "status", status, "operator_id", actor.AccountID)
	return s.accountRepo.GetByID(id)
}

func (s *UserService) buildProfile(account *models.Account) (*AccountProfile, error) {
	result := &AccountProfile{Account: account}
	switch account.RoleCode() {
	case constants.RoleCustomer:
		profile, err := s.profileRepo.GetByAccountID(account.ID)
		if err != nil {
			return nil, err
		}
		result.Profile = profile
	case constants.RoleRestaurant:
		restaurant, err := s.restaurantRepo.GetByAccountID(account.ID)
		if err != nil {
			return nil, err
		}
		result.Restaurant = restaurant
	}
	return result, nil
}
