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

// /api/admin/orders の管理者API
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderListResponse struct {
	OK     bool         `json:"ok"`
	Orders []model.Cart `json:"orders"`
}

type OrderDetailResponse struct {
	OK bool `json:"ok"`
	usecase.OrderDetail
}

type UpdateOrderStatusRequest struct {
	CartID int64  `json:"cart_id"`
	Status string `json:"status"`
}

// 管理者注文のルートを登録（JWT必須＋adminロール）
func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin/orders", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("", h.list)
	g.GET("/:id/details", h.detail)
	g.POST("/update-status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	orders, err := h.uc.List(c.Request().Context(), usecase.OrderListInput{
		OrderStatus: c.QueryParam("status"),
		Query:       c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderListResponse{OK: true, Orders: orders})
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	detail, err := h.uc.GetDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderDetailResponse{OK: true, OrderDetail: detail})
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	actorID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{OK: false, Error: "unauthorized", Message: "login required"})
	}

	err := h.uc.UpdateOrderStatus(c.Request().Context(), actorID, usecase.UpdateOrderStatusInput{
		CartID:    req.CartID,
		NewStatus: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
