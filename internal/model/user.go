package model

import (
	"strings"
	"time"
)

// Role enumerates the account roles recognised by the platform. The values
// are stored lowercase in the `users.user_type` column and embedded verbatim
// in JWT role claims.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleBoth   Role = "both"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a request-supplied string onto a known Role. Matching is
// case-insensitive so "SELLER" and "seller" are equivalent. The second
// return value reports whether the input was recognised; callers decide
// whether to fall back to a default or reject the request.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSeller:
		return RoleSeller, true
	case RoleBuyer:
		return RoleBuyer, true
	case RoleBoth:
		return RoleBoth, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Account lifecycle states stored in `users.status`.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Seller verification review states stored in `users.verification_status`.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// User mirrors a row of the `users` table. PasswordHash holds the bcrypt
// digest and is never serialised; handlers build explicit view types for
// JSON responses.
type User struct {
	ID                 uint64
	Email              string
	PasswordHash       string
	FirstName          string
	LastName           string
	Phone              string
	Role               Role
	SchoolName         string
	Suburb             string
	Town               string
	Province           string
	StreetAddress      string
	IDNumber           string
	Status             string
	SellerVerified     bool
	VerificationStatus string
	IDDocumentURL      string
	ProofOfAddressURL  string
	BankName           string
	BankAccountNumber  string
	BankAccountType    string
	BankBranchCode     string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is persisted; the raw value is handed to the
// client exactly once.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
