package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/middleware"
	"github.com/kitswap/kitswap-backend/internal/model"
	"github.com/kitswap/kitswap-backend/internal/repository"
)

// ItemHandler serves the authenticated listing endpoints.
type ItemHandler struct {
	Items *repository.ItemRepo
	Users *repository.UserRepo
}

func NewItemHandler(items *repository.ItemRepo, users *repository.UserRepo) *ItemHandler {
	return &ItemHandler{Items: items, Users: users}
}

// principalUser resolves the authenticated account from the JWT principal.
// A nil error with ok=false means the response has already been written.
func (h *ItemHandler) principalUser(c echo.Context, ctx context.Context) (model.User, bool) {
	email, ok := middleware.PrincipalEmail(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.User{}, false
	}
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return model.User{}, false
	}
	return u, true
}

type createItemReq struct {
	ItemTypeID     *uint64  `json:"item_type_id"`
	ItemName       string   `json:"item_name"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory"`
	Sport          string   `json:"sport"`
	SchoolName     string   `json:"school_name"`
	ClubName       string   `json:"club_name"`
	Team           string   `json:"team"`
	Size           string   `json:"size"`
	Gender         string   `json:"gender"`
	ConditionGrade *int     `json:"condition_grade"`
	Price          *float64 `json:"price"`
	FrontPhoto     string   `json:"front_photo"`
	BackPhoto      string   `json:"back_photo"`
	Description    string   `json:"description"`
	Quantity       *int     `json:"quantity"`
}

// Create inserts a new listing owned by the authenticated account. Price is
// the only required field.
func (h *ItemHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, ok := h.principalUser(c, ctx)
	if !ok {
		return nil
	}

	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Price == nil || *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price is required"})
	}

	gender, ok := model.ParseGender(req.Gender)
	if !ok {
		gender = model.GenderUnisex
	}
	quantity := 1
	if req.Quantity != nil && *req.Quantity >= 0 {
		quantity = *req.Quantity
	}

	item := model.Item{
		UserID:         u.ID,
		ItemTypeID:     req.ItemTypeID,
		ItemName:       req.ItemName,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Sport:          req.Sport,
		SchoolName:     req.SchoolName,
		ClubName:       req.ClubName,
		Team:           req.Team,
		Size:           req.Size,
		Gender:         gender,
		ConditionGrade: req.ConditionGrade,
		Price:          *req.Price,
		FrontPhoto:     req.FrontPhoto,
		BackPhoto:      req.BackPhoto,
		Description:    req.Description,
		Quantity:       quantity,
		Status:         model.ItemAvailable,
	}

	id, err := h.Items.Create(ctx, &item)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create item failed"})
	}
	created, err := h.Items.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load item failed"})
	}
	return c.JSON(http.StatusCreated, newItemView(created, &u))
}

// Mine lists the authenticated account's own listings, newest first.
func (h *ItemHandler) Mine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, ok := h.principalUser(c, ctx)
	if !ok {
		return nil
	}
	items, err := h.Items.ListByOwner(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		views = append(views, newItemView(it, &u))
	}
	return c.JSON(http.StatusOK, views)
}

// Update applies a sparse update to an owned listing. Only keys present in
// the body are touched; absent fields keep their stored values.
func (h *ItemHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, ok := h.principalUser(c, ctx)
	if !ok {
		return nil
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	item, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if item.UserID != u.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
	}

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	applyItemUpdates(&item, body)

	if err := h.Items.Update(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update item failed"})
	}
	updated, err := h.Items.GetByID(ctx, item.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load item failed"})
	}
	return c.JSON(http.StatusOK, newItemView(updated, &u))
}

// applyItemUpdates copies recognised keys from a decoded JSON body onto the
// listing. JSON numbers arrive as float64. Unknown keys and an
// unrecognised gender value are ignored rather than rejected.
func applyItemUpdates(item *model.Item, body map[string]any) {
	if v, ok := body["item_name"].(string); ok {
		item.ItemName = v
	}
	if v, ok := body["category"].(string); ok {
		item.Category = v
	}
	if v, ok := body["subcategory"].(string); ok {
		item.Subcategory = v
	}
	if v, ok := body["sport"].(string); ok {
		item.Sport = v
	}
	if v, ok := body["school_name"].(string); ok {
		item.SchoolName = v
	}
	if v, ok := body["club_name"].(string); ok {
		item.ClubName = v
	}
	if v, ok := body["team"].(string); ok {
		item.Team = v
	}
	if v, ok := body["size"].(string); ok {
		item.Size = v
	}
	if v, ok := body["gender"].(string); ok {
		if g, valid := model.ParseGender(v); valid {
			item.Gender = g
		}
	}
	if v, ok := body["condition_grade"].(float64); ok {
		grade := int(v)
		item.ConditionGrade = &grade
	}
	if v, ok := body["price"].(float64); ok && v >= 0 {
		item.Price = v
	}
	if v, ok := body["front_photo"].(string); ok {
		item.FrontPhoto = v
	}
	if v, ok := body["back_photo"].(string); ok {
		item.BackPhoto = v
	}
	if v, ok := body["description"].(string); ok {
		item.Description = v
	}
	if v, ok := body["quantity"].(float64); ok && v >= 0 {
		item.Quantity = int(v)
	}
	if v, ok := body["status"].(string); ok {
		switch v {
		case model.ItemAvailable, model.ItemSold, model.ItemReserved:
			item.Status = v
		}
	}
	if v, ok := body["item_type_id"].(float64); ok && v > 0 {
		id := uint64(v)
		item.ItemTypeID = &id
	}
}

// Delete removes an owned listing permanently.
func (h *ItemHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, ok := h.principalUser(c, ctx)
	if !ok {
		return nil
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	item, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if item.UserID != u.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
	}

	if err := h.Items.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete item failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
