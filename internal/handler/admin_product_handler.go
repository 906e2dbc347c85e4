package handler

import (
	"net/http"
	"strconv"

	"revorz/internal/config"
	"revorz/internal/domain/model"
	"revorz/internal/middleware"
	"revorz/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/admin/products の管理者API
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Colors      string `json:"colors"`
	Sizes       string `json:"sizes"`
}

type AdminProductResponse struct {
	OK      bool          `json:"ok"`
	Product model.Product `json:"product"`
}

// 管理者商品のルートを登録（JWT必須＋adminロール）
func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin/products", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, AdminProductResponse{OK: true, Product: p})
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.uc.Update(c.Request().Context(), id, usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AdminProductResponse{OK: true, Product: p})
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
