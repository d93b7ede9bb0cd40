package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/kitswap/kitswap-backend/internal/repository"
)

func loginRequest(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func bcryptHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

// A suspended account keeps its data but cannot open new sessions, even
// with the correct password.
func TestLoginRejectsSuspendedAccount(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db), nil)

	hash := bcryptHash(t, "password123")
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(42, "susan@seller.co.za", "seller", hash, "suspended"))

	c, rec := loginRequest(`{"email": "susan@seller.co.za", "password": "password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestLoginActiveAccount(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db), nil)

	hash := bcryptHash(t, "password123")
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(42, "susan@seller.co.za", "seller", hash, "active"))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := loginRequest(`{"email": "susan@seller.co.za", "password": "password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db), nil)

	hash := bcryptHash(t, "password123")
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(42, "susan@seller.co.za", "seller", hash, "active"))

	c, rec := loginRequest(`{"email": "susan@seller.co.za", "password": "wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
