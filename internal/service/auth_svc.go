package service

import (
	"context"
	"crypto/subtle"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/pkg/logger"
	"pdd_wms_v1/pkg/utils"
)

// ==================== AuthService 鉴权服务 ====================
// 管理员走用户名密码，员工支持三种凭证：
// Bearer Token（带员工ID）、员工ID请求头、登录码请求头

// 登录码碰撞重试上限，达到上限报"系统繁忙"而不是死循环
const maxLoginCodeAttempts = 10

// AuthService 鉴权服务
type AuthService struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewAuthService 创建鉴权服务
func NewAuthService(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

// ==================== Token ====================

// TokenClaims 会话声明
type TokenClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// GenerateToken 签发会话 Token
// subject: "admin" 或 "employee"
func (s *AuthService) GenerateToken(subject, uid string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pdd-wms",
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken 解析会话 Token
func (s *AuthService) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewUnauthorized("Token 签名算法错误")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, NewUnauthorized("Token 无效或已过期")
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, NewUnauthorized("Token 无效")
	}
	return claims, nil
}

// ==================== 管理员 ====================

// VerifyAdmin 校验后台账号的用户名密码
// 返回的账号对象不带密码字段
func (s *AuthService) VerifyAdmin(ctx context.Context, username, password string) (*model.SysUser, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, NewInternal(err)
	}
	if user == nil {
		return nil, NewUnauthorized("用户名或密码错误")
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, NewUnauthorized("账号已禁用")
	}

	if !s.verifyStoredPassword(ctx, user.Password, password, func(hashed string) error {
		return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
	}) {
		return nil, NewUnauthorized("用户名或密码错误")
	}

	user.Password = ""
	return user, nil
}

// verifyStoredPassword 比对口令
// 存量数据可能还是旧库导入的明文：非 bcrypt 格式走常量时间比较，
// 比对成功后原地升级为 bcrypt 哈希
func (s *AuthService) verifyStoredPassword(ctx context.Context, stored, input string, upgrade func(hashed string) error) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(input)) != 1 {
		return false
	}
	if hashed, err := bcrypt.GenerateFromPassword([]byte(input), bcrypt.DefaultCost); err == nil {
		if err := upgrade(string(hashed)); err != nil {
			logger.L().Warn("明文口令升级失败", zap.Error(err))
		}
	}
	return true
}

// ==================== 员工登录 ====================

// EmployeeLoginRequest 员工登录请求：手机号+密码，或 8 位登录码
type EmployeeLoginRequest struct {
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	LoginCode string `json:"loginCode"`
}

// EmployeeLogin 员工登录，成功返回员工信息（不含密码）和 Bearer Token
func (s *AuthService) EmployeeLogin(ctx context.Context, req *EmployeeLoginRequest) (*model.Employee, string, error) {
	var employee *model.Employee

	switch {
	case req.LoginCode != "":
		code := strings.ToUpper(strings.TrimSpace(req.LoginCode))
		// 格式不对直接拒绝，不触发查询
		if !utils.LoginCodePattern.MatchString(code) {
			return nil, "", NewValidation("登录码格式错误，应为8位大写字母或数字")
		}
		found, err := s.employeeRepo.GetByLoginCode(ctx, code)
		if err != nil {
			return nil, "", NewInternal(err)
		}
		if found == nil {
			return nil, "", NewUnauthorized("登录码无效")
		}
		employee = found

	case req.Phone != "" && req.Password != "":
		found, err := s.employeeRepo.GetByPhone(ctx, req.Phone)
		if err != nil {
			return nil, "", NewInternal(err)
		}
		if found == nil {
			return nil, "", NewUnauthorized("手机号或密码错误")
		}
		ok := s.verifyStoredPassword(ctx, found.Password, req.Password, func(hashed string) error {
			_, err := s.employeeRepo.Update(ctx, found.ID, map[string]interface{}{"password": hashed})
			return err
		})
		if !ok {
			return nil, "", NewUnauthorized("手机号或密码错误")
		}
		employee = found

	default:
		return nil, "", NewValidation("请提供手机号密码或登录码")
	}

	if err := s.employeeRepo.TouchLastLogin(ctx, employee.ID); err != nil {
		logger.L().Warn("更新最后登录时间失败", zap.String("employee", employee.ID), zap.Error(err))
	}

	token, err := s.GenerateToken("employee", employee.ID)
	if err != nil {
		return nil, "", NewInternal(err)
	}

	employee.Password = ""
	return employee, token, nil
}

// ==================== 员工凭证解析 ====================

// EmployeeCredential 请求携带的员工凭证
type EmployeeCredential struct {
	BearerToken string // Authorization: Bearer xxx
	EmployeeID  string // X-Employee-Id 请求头
	LoginCode   string // X-Login-Code 请求头
}

// employeeResolver 单个凭证解析策略
// 返回 (nil, nil) 表示该凭证不可用，换下一个策略
type employeeResolver func(ctx context.Context, cred EmployeeCredential) (*model.Employee, error)

// VerifyEmployee 按固定顺序解析员工身份：Bearer Token → ID 头 → 登录码头
// 第一个解析到已存在员工的策略生效；全部未命中返回鉴权失败
func (s *AuthService) VerifyEmployee(ctx context.Context, cred EmployeeCredential) (*model.Employee, error) {
	resolvers := []employeeResolver{
		s.resolveByBearer,
		s.resolveByIDHeader,
		s.resolveByLoginCode,
	}

	for _, resolve := range resolvers {
		employee, err := resolve(ctx, cred)
		if err != nil {
			return nil, err
		}
		if employee != nil {
			employee.Password = ""
			return employee, nil
		}
	}
	return nil, NewUnauthorized("缺少有效的员工凭证")
}

func (s *AuthService) resolveByBearer(ctx context.Context, cred EmployeeCredential) (*model.Employee, error) {
	if cred.BearerToken == "" {
		return nil, nil
	}
	claims, err := s.ParseToken(cred.BearerToken)
	if err != nil || claims.Subject != "employee" {
		// Token 无效时继续尝试其他凭证
		return nil, nil
	}
	employee, err := s.employeeRepo.GetByID(ctx, claims.UID)
	if err != nil {
		return nil, NewInternal(err)
	}
	return employee, nil
}

func (s *AuthService) resolveByIDHeader(ctx context.Context, cred EmployeeCredential) (*model.Employee, error) {
	if cred.EmployeeID == "" {
		return nil, nil
	}
	employee, err := s.employeeRepo.GetByID(ctx, cred.EmployeeID)
	if err != nil {
		return nil, NewInternal(err)
	}
	return employee, nil
}

func (s *AuthService) resolveByLoginCode(ctx context.Context, cred EmployeeCredential) (*model.Employee, error) {
	if cred.LoginCode == "" {
		return nil, nil
	}
	code := strings.ToUpper(strings.TrimSpace(cred.LoginCode))
	if !utils.LoginCodePattern.MatchString(code) {
		return nil, NewValidation("登录码格式错误，应为8位大写字母或数字")
	}
	employee, err := s.employeeRepo.GetByLoginCode(ctx, code)
	if err != nil {
		return nil, NewInternal(err)
	}
	return employee, nil
}

// ==================== 员工注册 ====================

// RegisterEmployeeRequest 员工注册请求
type RegisterEmployeeRequest struct {
	Name     string `json:"name"`
	RealName string `json:"realName"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterEmployee 注册员工
// 工号 = 姓名拼音首字母 + 同前缀下一个序号；登录码随机生成，碰撞重试有上限
func (s *AuthService) RegisterEmployee(ctx context.Context, req *RegisterEmployeeRequest) (*model.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		return nil, NewValidation("姓名长度至少2个字符")
	}
	if !utils.MobilePattern.MatchString(req.Phone) {
		return nil, NewValidation("手机号格式错误")
	}
	if len(req.Password) < 6 {
		return nil, NewValidation("密码长度至少6位")
	}

	exists, err := s.employeeRepo.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, NewInternal(err)
	}
	if exists {
		return nil, NewConflict("手机号已注册")
	}

	number, err := s.nextEmployeeNumber(ctx, name)
	if err != nil {
		return nil, err
	}

	code, err := s.generateLoginCode(ctx)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternal(err)
	}

	employee := &model.Employee{
		EmployeeNumber: number,
		Name:           name,
		RealName:       req.RealName,
		Phone:          req.Phone,
		Password:       string(hashed),
		LoginCode:      code,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, NewInternal(err)
	}

	logger.L().Info("员工注册成功",
		zap.String("employeeNumber", number),
		zap.String("name", name))

	employee.Password = ""
	return employee, nil
}

func (s *AuthService) nextEmployeeNumber(ctx context.Context, name string) (string, error) {
	prefix := utils.NameInitials(name)
	if prefix == "" {
		prefix = "YG"
	}
	suffix, err := s.employeeRepo.NextNumberSuffix(ctx, prefix)
	if err != nil {
		return "", NewInternal(err)
	}
	return prefix + strconv.Itoa(suffix), nil
}

// generateLoginCode 生成不碰撞的登录码，重试超限报系统繁忙
func (s *AuthService) generateLoginCode(ctx context.Context) (string, error) {
	for i := 0; i < maxLoginCodeAttempts; i++ {
		code, err := utils.RandomLoginCode()
		if err != nil {
			return "", NewInternal(err)
		}
		exists, err := s.employeeRepo.ExistsByLoginCode(ctx, code)
		if err != nil {
			return "", NewInternal(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", NewConflict("系统繁忙，请稍后重试")
}
