package handler

import (
	"time"

	"github.com/kitswap/kitswap-backend/internal/model"
)

// userView is the JSON shape of an account returned to clients and the
// admin console. The password hash is deliberately absent.
type userView struct {
	ID                 uint64    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Phone              string    `json:"phone"`
	UserType           string    `json:"user_type"`
	SchoolName         string    `json:"school_name"`
	Suburb             string    `json:"suburb"`
	Town               string    `json:"town"`
	Province           string    `json:"province"`
	StreetAddress      string    `json:"street_address"`
	IDNumber           string    `json:"id_number"`
	Status             string    `json:"status"`
	SellerVerified     bool      `json:"seller_verified"`
	VerificationStatus string    `json:"verification_status"`
	IDDocumentURL      string    `json:"id_document_url"`
	ProofOfAddressURL  string    `json:"proof_of_address_url"`
	BankName           string    `json:"bank_name"`
	BankAccountNumber  string    `json:"bank_account_number"`
	BankAccountType    string    `json:"bank_account_type"`
	BankBranchCode     string    `json:"bank_branch_code"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func newUserView(u model.User) userView {
	return userView{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		UserType:           u.Role.String(),
		SchoolName:         u.SchoolName,
		Suburb:             u.Suburb,
		Town:               u.Town,
		Province:           u.Province,
		StreetAddress:      u.StreetAddress,
		IDNumber:           u.IDNumber,
		Status:             u.Status,
		SellerVerified:     u.SellerVerified,
		VerificationStatus: u.VerificationStatus,
		IDDocumentURL:      u.IDDocumentURL,
		ProofOfAddressURL:  u.ProofOfAddressURL,
		BankName:           u.BankName,
		BankAccountNumber:  u.BankAccountNumber,
		BankAccountType:    u.BankAccountType,
		BankBranchCode:     u.BankBranchCode,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func newUserViews(users []model.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}

// itemView is the JSON shape of a listing. SoldOut is derived from quantity,
// never stored; the seller location fields are filled when the owning
// account is known to the handler.
type itemView struct {
	ID             uint64    `json:"id"`
	ItemTypeID     *uint64   `json:"item_type_id,omitempty"`
	ItemName       string    `json:"item_name"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory"`
	Sport          string    `json:"sport"`
	SchoolName     string    `json:"school_name"`
	ClubName       string    `json:"club_name"`
	Team           string    `json:"team"`
	Size           string    `json:"size"`
	Gender         string    `json:"gender"`
	ConditionGrade *int      `json:"condition_grade,omitempty"`
	Price          float64   `json:"price"`
	FrontPhoto     string    `json:"front_photo"`
	BackPhoto      string    `json:"back_photo"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	Status         string    `json:"status"`
	SoldOut        bool      `json:"sold_out"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	SellerTown     string    `json:"seller_town,omitempty"`
	SellerProvince string    `json:"seller_province,omitempty"`
}

func newItemView(i model.Item, seller *model.User) itemView {
	v := itemView{
		ID:             i.ID,
		ItemTypeID:     i.ItemTypeID,
		ItemName:       i.ItemName,
		Category:       i.Category,
		Subcategory:    i.Subcategory,
		Sport:          i.Sport,
		SchoolName:     i.SchoolName,
		ClubName:       i.ClubName,
		Team:           i.Team,
		Size:           i.Size,
		Gender:         string(i.Gender),
		ConditionGrade: i.ConditionGrade,
		Price:          i.Price,
		FrontPhoto:     i.FrontPhoto,
		BackPhoto:      i.BackPhoto,
		Description:    i.Description,
		Quantity:       i.Quantity,
		Status:         i.Status,
		SoldOut:        i.SoldOut(),
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
	if seller != nil {
		v.SellerTown = seller.Town
		v.SellerProvince = seller.Province
	}
	return v
}
