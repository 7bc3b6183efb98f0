package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KaanYilmazz/117RosterMaker/config"
	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *jwt.Manager, *testRepos) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}

	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, jwtMgr, repos
}

func createTestAccount(t *testing.T, repos *testRepos, email, password string, position model.Position) *model.Employee {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	employee := &model.Employee{
		Name:         "测试员工",
		Position:     position,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := repos.employee.Create(context.Background(), employee); err != nil {
		t.Fatalf("种子员工失败: %v", err)
	}
	return employee
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, jwtMgr, repos := setupTestAuthService()
	emp := createTestAccount(t, repos, "manager@cafe.test", "password123", model.PositionManager)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "manager@cafe.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("应返回 Token 对")
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d", result.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("解析 AccessToken 失败: %v", err)
	}
	if claims.EmployeeID != emp.EmployeeID || claims.Position != string(model.PositionManager) {
		t.Errorf("Claims 不正确: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %s", claims.TokenType)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	createTestAccount(t, repos, "staff@cafe.test", "password123", model.PositionRegularStaff)

	cases := []dto.LoginRequest{
		{Email: "staff@cafe.test", Password: "wrong-password"},
		{Email: "nobody@cafe.test", Password: "password123"},
	}
	for _, req := range cases {
		if _, err := svc.Login(context.Background(), &req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) 期望 ErrInvalidCredentials，实际 %v", req.Email, err)
		}
	}
}

func TestLogin_NoPasswordSetCannotLogin(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	employee := &model.Employee{Name: "无密码员工", Position: model.PositionPartTimeStaff, Email: "np@cafe.test"}
	repos.employee.Create(context.Background(), employee)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "np@cafe.test", Password: "anything",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

// ── 刷新测试 ──

func TestRefresh_Success(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	createTestAccount(t, repos, "manager@cafe.test", "password123", model.PositionManager)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "manager@cafe.test", Password: "password123",
	})
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 失败: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("刷新应返回新的 Token 对")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	createTestAccount(t, repos, "manager@cafe.test", "password123", model.PositionManager)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "manager@cafe.test", Password: "password123",
	})

	if _, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.AccessToken}); !errors.Is(err, ErrNotRefreshToken) {
		t.Errorf("用 access token 刷新应拒绝，实际 %v", err)
	}
}

func TestRefresh_DeletedEmployee(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	emp := createTestAccount(t, repos, "gone@cafe.test", "password123", model.PositionRegularStaff)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "gone@cafe.test", Password: "password123",
	})
	repos.employee.Delete(context.Background(), emp.EmployeeID, "admin")

	if _, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("已删除员工刷新应拒绝，实际 %v", err)
	}
}

// ── 当前员工与登出 ──

func TestCurrentEmployee(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	emp := createTestAccount(t, repos, "me@cafe.test", "password123", model.PositionHeadBarista)

	me, err := svc.CurrentEmployee(context.Background(), emp.EmployeeID)
	if err != nil {
		t.Fatalf("CurrentEmployee 失败: %v", err)
	}
	if me.ID != emp.EmployeeID || me.Position != string(model.PositionHeadBarista) {
		t.Errorf("返回信息不正确: %+v", me)
	}

	if _, err := svc.CurrentEmployee(context.Background(), "missing"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际 %v", err)
	}
}

func TestLogout_NoRedisIsNoop(t *testing.T) {
	svc, jwtMgr, repos := setupTestAuthService()
	createTestAccount(t, repos, "me@cafe.test", "password123", model.PositionManager)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "me@cafe.test", Password: "password123",
	})
	claims, _ := jwtMgr.ParseToken(login.AccessToken)

	// Redis 未配置时登出降级为幂等空操作
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
}

