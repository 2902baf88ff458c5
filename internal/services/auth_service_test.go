package services

import (
	"errors"
	"testing"
	"time"

	"ponto_backend/pkg/utils"
)

func TestAdminLoginIssuesToken(t *testing.T) {
	st := newTestStore(t)
	svc := NewAuthService(st, "test-secret", time.Hour)

	resp, err := svc.AdminLogin(AdminLoginRequest{PIN: "9999"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
	}
	claims, err := utils.ValidateAdminToken("test-secret", resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if _, err := utils.ValidateAdminToken("other-secret", resp.AccessToken); err == nil {
		t.Error("token validated against the wrong secret")
	}
}

func TestAdminLoginRejectsWrongPIN(t *testing.T) {
	st := newTestStore(t)
	svc := NewAuthService(st, "test-secret", time.Hour)

	if _, err := svc.AdminLogin(AdminLoginRequest{PIN: "0000"}); !errors.Is(err, ErrInvalidAdminPIN) {
		t.Errorf("err = %v, want ErrInvalidAdminPIN", err)
	}
}

func TestChangeAdminPIN(t *testing.T) {
	st := newTestStore(t)
	svc := NewAuthService(st, "test-secret", time.Hour)

	if err := svc.ChangeAdminPIN(ChangeAdminPINRequest{CurrentPIN: "9999", NewPIN: "12ab"}); !errors.Is(err, ErrAdminPINFormat) {
		t.Errorf("bad new PIN err = %v, want ErrAdminPINFormat", err)
	}
	if err := svc.ChangeAdminPIN(ChangeAdminPINRequest{CurrentPIN: "0000", NewPIN: "4321"}); !errors.Is(err, ErrInvalidAdminPIN) {
		t.Errorf("wrong current PIN err = %v, want ErrInvalidAdminPIN", err)
	}
	if err := svc.ChangeAdminPIN(ChangeAdminPINRequest{CurrentPIN: "9999", NewPIN: "4321"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AdminLogin(AdminLoginRequest{PIN: "9999"}); !errors.Is(err, ErrInvalidAdminPIN) {
		t.Error("old admin PIN still accepted after change")
	}
	if _, err := svc.AdminLogin(AdminLoginRequest{PIN: "4321"}); err != nil {
		t.Errorf("new admin PIN rejected: %v", err)
	}
}
