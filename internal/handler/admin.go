package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/config"
	"github.com/kitswap/kitswap-backend/internal/middleware"
	"github.com/kitswap/kitswap-backend/internal/model"
	"github.com/kitswap/kitswap-backend/internal/queue"
	"github.com/kitswap/kitswap-backend/internal/repository"
	queue_publisher "github.com/kitswap/kitswap-backend/internal/service"
	"github.com/kitswap/kitswap-backend/internal/utils"
)

// AdminHandler serves the moderation console. Every handler re-checks the
// admin role itself before touching the database; the route-level guard is
// not trusted on its own.
type AdminHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAdminHandler(cfg config.Config, users *repository.UserRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: users}
}

// requireAdmin verifies the principal's role claim parses to admin. It
// writes the 403 itself and reports whether the caller may proceed.
func requireAdmin(c echo.Context) bool {
	raw, _ := c.Get("role").(string)
	role, ok := model.ParseRole(raw)
	if !ok || role != model.RoleAdmin {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
		return false
	}
	return true
}

type dashboardStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	ActiveUsers        int64 `json:"activeUsers"`
	SuspendedUsers     int64 `json:"suspendedUsers"`
	PendingSellers     int64 `json:"pendingVerifications"`
	VerifiedSellers    int64 `json:"verifiedSellers"`
	TotalSales         int64 `json:"totalSales"`
	TotalOrders        int64 `json:"totalOrders"`
	PlatformFees       int64 `json:"platformFees"`
	RecentTransactions int64 `json:"recentTransactions"`
}

// DashboardStats aggregates account counts for the console landing page.
// The sales figures stay zero until order processing exists.
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var stats dashboardStats
	var err error
	if stats.TotalUsers, err = h.Users.Count(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if stats.ActiveUsers, err = h.Users.CountByStatus(ctx, model.StatusActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if stats.SuspendedUsers, err = h.Users.CountByStatus(ctx, model.StatusSuspended); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if stats.PendingSellers, err = h.Users.CountByVerificationStatus(ctx, model.VerificationPending); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if stats.VerifiedSellers, err = h.Users.CountByVerificationStatus(ctx, model.VerificationVerified); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers returns accounts, optionally narrowed by ?role= and a free-text
// ?search= over name and email.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	var roleFilter *model.Role
	if raw := c.QueryParam("role"); raw != "" {
		if role, ok := model.ParseRole(raw); ok {
			roleFilter = &role
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx, roleFilter, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, newUserViews(users))
}

// PendingSellers lists seller-capable accounts awaiting review.
func (h *AdminHandler) PendingSellers(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.PendingSellers(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, newUserViews(users))
}

// VerifySeller approves a pending seller.
func (h *AdminHandler) VerifySeller(c echo.Context) error {
	return h.decideSeller(c, true, model.VerificationVerified)
}

// RejectSeller declines a pending seller. The account stays active and may
// upload new documents to re-enter the queue.
func (h *AdminHandler) RejectSeller(c echo.Context) error {
	return h.decideSeller(c, false, model.VerificationRejected)
}

func (h *AdminHandler) decideSeller(c echo.Context, verified bool, status string) error {
	if !requireAdmin(c) {
		return nil
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Users.SetVerification(ctx, u.ID, verified, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	admin, _ := middleware.PrincipalEmail(c)
	ev := queue.SellerVerificationEvent{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Decision:  status,
		DecidedBy: admin,
		DecidedAt: time.Now().UTC().Format(time.RFC3339),
	}
	// Audit publish runs in the background; the decision stands even when
	// the broker is down.
	go func() {
		if err := queue_publisher.PublishSellerVerification(context.Background(), ev); err != nil {
			log.Printf("admin: publish seller verification event failed: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"message":             "seller " + status,
		"verification_status": status,
	})
}

type updateRoleReq struct {
	UserType string `json:"userType"`
}

// UpdateRole changes an account's role. Live access tokens keep their old
// role claim until they expire.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role, ok := model.ParseRole(req.UserType)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown userType"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetRole(ctx, id, role); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role updated", "user_type": role.String()})
}

// ResetPassword replaces an account's password with a generated temporary
// one and returns it so the admin can hand it over out of band.
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	temp, err := utils.TempPassword(10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate password failed"})
	}
	hash, err := utils.HashPassword(temp, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetPasswordHash(ctx, id, hash); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "password reset",
		"tempPassword": temp,
	})
}

// Suspend deactivates an account. Suspended accounts keep their data and
// listings but cannot authenticate new sessions once tokens expire.
func (h *AdminHandler) Suspend(c echo.Context) error {
	return h.setStatus(c, model.StatusSuspended)
}

// Reactivate restores a suspended account.
func (h *AdminHandler) Reactivate(c echo.Context) error {
	return h.setStatus(c, model.StatusActive)
}

func (h *AdminHandler) setStatus(c echo.Context, status string) error {
	if !requireAdmin(c) {
		return nil
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetStatus(ctx, id, status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated", "status": status})
}
