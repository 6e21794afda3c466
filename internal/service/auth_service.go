package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims 访问令牌声明
type AccessClaims struct {
	SubjectID uint   `json:"sub_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 令牌签发与校验服务
type AuthService struct {
	cfg          config.JWTConfig
	customerRepo repository.CustomerRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg config.JWTConfig, customerRepo repository.CustomerRepository) *AuthService {
	return &AuthService{
		cfg:          cfg,
		customerRepo: customerRepo,
	}
}

func (s *AuthService) ttl() time.Duration {
	if s.cfg.ExpireHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.cfg.ExpireHours) * time.Hour
}

// GenerateJWT 为指定主体与角色签发令牌
func (s *AuthService) GenerateJWT(subjectID uint, role string) (string, time.Time, error) {
	secret := strings.TrimSpace(s.cfg.SecretKey)
	if secret == "" {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	now := time.Now()
	expiresAt := now.Add(s.ttl())

	claims := AccessClaims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// IssueCustomerToken 为已存在的客户签发令牌
func (s *AuthService) IssueCustomerToken(customerID uint) (string, time.Time, error) {
	if customerID == 0 {
		return "", time.Time{}, ErrCustomerNotFound
	}
	if s.customerRepo != nil {
		customer, err := s.customerRepo.GetByID(customerID)
		if err != nil {
			return "", time.Time{}, err
		}
		if customer == nil {
			return "", time.Time{}, ErrCustomerNotFound
		}
	}
	return s.GenerateJWT(customerID, constants.RoleCustomer)
}

// IssueAdminToken 签发管理员令牌
func (s *AuthService) IssueAdminToken(adminID uint) (string, time.Time, error) {
	return s.GenerateJWT(adminID, constants.RoleAdmin)
}

// ParseJWT 解析并校验令牌，role 非空时要求角色一致
func (s *AuthService) ParseJWT(tokenString, role string) (*AccessClaims, error) {
	secret := strings.TrimSpace(s.cfg.SecretKey)
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &AccessClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.SubjectID == 0 {
		return nil, ErrTokenInvalid
	}
	if role != "" && claims.Role != role {
		return nil, ErrTokenRoleMismatch
	}
	return claims, nil
}
