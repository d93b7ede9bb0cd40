package handler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/config"
	"github.com/kitswap/kitswap-backend/internal/imaging"
	"github.com/kitswap/kitswap-backend/internal/middleware"
	"github.com/kitswap/kitswap-backend/internal/model"
	"github.com/kitswap/kitswap-backend/internal/repository"
	"github.com/kitswap/kitswap-backend/internal/storage"
	"github.com/kitswap/kitswap-backend/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Files  *storage.Store
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, f *storage.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Files: f}
}

// ----- DTOs -----

type registerReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Suburb     string `json:"suburb"`
	Town       string `json:"town"`
	Province   string `json:"province"`
	SchoolName string `json:"school_name"`
	UserType   string `json:"user_type"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	Token    string    `json:"token"`
	UserType string    `json:"userType"`
	Expires  time.Time `json:"expires"`
	Refresh  tokenPart `json:"refresh"`
	User     userView  `json:"user"`
}

// Register creates an account and returns tokens immediately; no separate
// login step is required. Unrecognised role strings fall back to "both".
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	role, ok := model.ParseRole(req.UserType)
	if !ok {
		role = model.RoleBoth
	}

	u := model.User{
		Email:      req.Email,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Phone:      strings.TrimSpace(req.Phone),
		Role:       role,
		Suburb:     req.Suburb,
		Town:       req.Town,
		Province:   req.Province,
		SchoolName: req.SchoolName,
		Status:     model.StatusActive,
	}
	// Pure sellers start unverified and pending review; every other role is
	// considered pre-verified.
	if role == model.RoleSeller {
		u.SellerVerified = false
		u.VerificationStatus = model.VerificationPending
	} else {
		u.SellerVerified = true
		u.VerificationStatus = model.VerificationVerified
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}
	u.PasswordHash = hash

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, &u)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	created, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return h.issueTokens(c, http.StatusCreated, created)
}

// Login verifies credentials and returns a fresh token pair. Unknown email
// and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if u.Status == model.StatusSuspended {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account suspended"})
	}
	// All four roles may log in; only a corrupt role value is refused.
	if _, ok := model.ParseRole(u.Role.String()); !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}
	return h.issueTokens(c, http.StatusOK, u)
}

// issueTokens signs an access token scoped to the account's current role,
// stores a refresh token hash and writes the combined response.
func (h *AuthHandler) issueTokens(c echo.Context, status int, u model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Email, u.Role.String(), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(status, authResp{
		Token:    access.Token,
		UserType: u.Role.String(),
		Expires:  access.Exp,
		Refresh:  tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
		User:     newUserView(u),
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if u.Status == model.StatusSuspended {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account suspended"})
	}
	return h.issueTokens(c, http.StatusOK, u)
}

// Logout revokes sessions. With a refresh token in the body it revokes that
// session; with only a valid bearer it revokes every session of the account.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	// No refresh token: fall back to the bearer and revoke all sessions.
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide Authorization header or refresh_token"})
	}
	email, _, err := utils.ParseAccessToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the authenticated account's full view.
func (h *AuthHandler) Profile(c echo.Context) error {
	email, ok := middleware.PrincipalEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, newUserView(u))
}

// UploadIDDocument stores an identity document (multipart field
// "idDocument") and drops the account back to pending review.
func (h *AuthHandler) UploadIDDocument(c echo.Context) error {
	return h.uploadDocument(c, "idDocument", storage.SubdirIDDocuments, repository.DocumentID)
}

// UploadProofOfResidence stores a proof-of-residence document (multipart
// field "proofOfResidence") and drops the account back to pending review.
func (h *AuthHandler) UploadProofOfResidence(c echo.Context) error {
	return h.uploadDocument(c, "proofOfResidence", storage.SubdirProofOfResidence, repository.DocumentProofOfAddress)
}

func (h *AuthHandler) uploadDocument(c echo.Context, field, subdir string, kind repository.DocumentKind) error {
	email, ok := middleware.PrincipalEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	fh, err := c.FormFile(field)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": field + " file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read file"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read file"})
	}
	if err := imaging.ValidateDocument(data); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	url, err := h.Files.Save(data, fh.Filename, subdir)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save file"})
	}
	// Every fresh document re-triggers review, even for a verified seller.
	if err := h.Users.SetDocument(ctx, u.ID, kind, url); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update user"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"url":                 url,
		"verification_status": model.VerificationPending,
	})
}
