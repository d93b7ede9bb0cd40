package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/repository"
)

// adminContext builds a request context with the given role claim, the way
// the JWT middleware would leave it.
func adminContext(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestRequireAdmin(t *testing.T) {
	c, _ := adminContext("admin")
	if !requireAdmin(c) {
		t.Error("admin role refused")
	}

	c, _ = adminContext("ADMIN")
	if !requireAdmin(c) {
		t.Error("role claim must parse case-insensitively")
	}

	for _, role := range []string{"buyer", "seller", "both", "superuser", ""} {
		c, rec := adminContext(role)
		if requireAdmin(c) {
			t.Errorf("role %q passed the admin check", role)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %q: status = %d", role, rec.Code)
		}
	}
}

// The admin handlers must refuse before touching their dependencies, so a
// handler with no repository wired is safe for a non-admin caller.
func TestAdminHandlersRefuseBeforeStore(t *testing.T) {
	h := &AdminHandler{}

	c, rec := adminContext("buyer")
	if err := h.DashboardStats(c); err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("DashboardStats status = %d", rec.Code)
	}

	c, rec = adminContext("seller")
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("ListUsers status = %d", rec.Code)
	}

	c, rec = adminContext("both")
	if err := h.PendingSellers(c); err != nil {
		t.Fatalf("PendingSellers: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("PendingSellers status = %d", rec.Code)
	}
}

// The dashboard response shape is consumed by the admin frontend: the key
// names are fixed, and the sales figures stay zero until order processing
// exists.
func TestDashboardStatsResponseShape(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(testConfig(), repository.NewUserRepo(db))

	counts := []int64{10, 8, 2, 3, 5}
	for _, n := range counts {
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	}

	c, rec := adminContext("admin")
	if err := h.DashboardStats(c); err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]float64{
		"totalUsers":           10,
		"activeUsers":          8,
		"suspendedUsers":       2,
		"pendingVerifications": 3,
		"verifiedSellers":      5,
		"totalSales":           0,
		"totalOrders":          0,
		"platformFees":         0,
		"recentTransactions":   0,
	}
	for key, val := range want {
		got, ok := body[key]
		if !ok {
			t.Errorf("missing key %q in %s", key, rec.Body.String())
			continue
		}
		if got != val {
			t.Errorf("%s = %v, want %v", key, got, val)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
