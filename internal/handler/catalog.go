package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/repository"
)

// CatalogHandler serves the public, read-only taxonomy and browse
// endpoints. These sit behind the response cache in the router.
type CatalogHandler struct {
	Catalog *repository.CatalogRepo
	Items   *repository.ItemRepo
	Users   *repository.UserRepo
}

func NewCatalogHandler(cat *repository.CatalogRepo, items *repository.ItemRepo, users *repository.UserRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: cat, Items: items, Users: users}
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// ListCategories returns the top-level categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Catalog.ListCategories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cats)
}

// ListItemTypes returns the item types under one category.
func (h *CatalogHandler) ListItemTypes(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	types, err := h.Catalog.ListItemTypesByCategory(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, types)
}

// ListItemsByType returns every listing attached to an item type, with the
// seller's town and province merged into each entry.
func (h *CatalogHandler) ListItemsByType(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item type id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Items.ListByItemType(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	views := make([]itemView, 0, len(items))
	for _, it := range items {
		seller, err := h.Users.GetByID(ctx, it.UserID)
		if err != nil {
			views = append(views, newItemView(it, nil))
			continue
		}
		views = append(views, newItemView(it, &seller))
	}
	return c.JSON(http.StatusOK, views)
}
