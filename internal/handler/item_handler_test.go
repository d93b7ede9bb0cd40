package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/config"
	"github.com/kitswap/kitswap-backend/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   5,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}
}

var userTestColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "phone", "user_type",
	"school_name", "suburb", "town", "province", "street_address", "id_number",
	"status", "seller_verified", "verification_status", "id_document_url",
	"proof_of_address_url", "bank_name", "bank_account_number", "bank_account_type",
	"bank_branch_code", "created_at", "updated_at",
}

var itemTestColumns = []string{
	"id", "user_id", "item_type_id", "item_name", "category", "subcategory", "sport",
	"school_name", "club_name", "team", "size", "gender", "condition_grade", "price",
	"front_photo", "back_photo", "description", "quantity", "status", "created_at",
	"updated_at",
}

func userRow(id uint64, email, role, hash, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userTestColumns).AddRow(
		id, email, hash, "Test", "User", "0800000000", role,
		"", "", "", "", "", "",
		status, true, "verified", "",
		"", "", "", "",
		"", now, now)
}

func itemRow(id, ownerID uint64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(itemTestColumns).AddRow(
		id, ownerID, nil, "Winter blazer", "School Uniforms", "", "",
		"", "", "", "M", "boy", nil, 250.0,
		nil, nil, nil, 2, "available", now, now)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func itemRequest(method, body, email, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/items/1", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/items/1", nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("email", email)
	c.Set("role", role)
	return c, rec
}

// Listings are owner-only; an admin principal gets Forbidden like any other
// non-owner and no write reaches the database.
func TestUpdateRejectsNonOwnerAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewItemHandler(repository.NewItemRepo(db), repository.NewUserRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(7, "admin@kitswap.co.za", "admin", "x", "active"))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id=").
		WillReturnRows(itemRow(1, 42))

	c, rec := itemRequest(http.MethodPut, `{"price": 10}`, "admin@kitswap.co.za", "admin")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewItemHandler(repository.NewItemRepo(db), repository.NewUserRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(7, "admin@kitswap.co.za", "admin", "x", "active"))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id=").
		WillReturnRows(itemRow(1, 42))

	c, rec := itemRequest(http.MethodDelete, "", "admin@kitswap.co.za", "admin")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestUpdateAllowsOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewItemHandler(repository.NewItemRepo(db), repository.NewUserRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(42, "susan@seller.co.za", "seller", "x", "active"))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id=").
		WillReturnRows(itemRow(1, 42))
	mock.ExpectExec("UPDATE items SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id=").
		WillReturnRows(itemRow(1, 42))

	c, rec := itemRequest(http.MethodPut, `{"price": 10}`, "susan@seller.co.za", "seller")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// Authentication is the only requirement for creating a listing; a buyer
// account may list, and item_name is optional.
func TestCreateAllowsBuyerWithoutName(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewItemHandler(repository.NewItemRepo(db), repository.NewUserRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(42, "pieter@buyer.co.za", "buyer", "x", "active"))
	mock.ExpectExec("INSERT INTO items").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id=").
		WillReturnRows(itemRow(9, 42))

	c, rec := itemRequest(http.MethodPost, `{"price": 99.5}`, "pieter@buyer.co.za", "buyer")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateRequiresPrice(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewItemHandler(repository.NewItemRepo(db), repository.NewUserRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow(42, "pieter@buyer.co.za", "buyer", "x", "active"))

	c, rec := itemRequest(http.MethodPost, `{"item_name": "Blazer"}`, "pieter@buyer.co.za", "buyer")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
