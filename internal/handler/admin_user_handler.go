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

// /api/admin/users の管理者API
type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type UserListResponse struct {
	OK    bool         `json:"ok"`
	Users []model.User `json:"users"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// 管理者ユーザーのルートを登録（JWT必須＋adminロール）
func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin/users", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("", h.list)
	g.POST("/:id/update-role", h.updateRole)
	g.POST("/:id/delete", h.delete)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, UserListResponse{OK: true, Users: users})
}

func (h *AdminUserHandler) updateRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req UpdateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	actorID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{OK: false, Error: "unauthorized", Message: "login required"})
	}

	if err := h.uc.UpdateRole(c.Request().Context(), actorID, id, req.Role); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	actorID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{OK: false, Error: "unauthorized", Message: "login required"})
	}

	if err := h.uc.Delete(c.Request().Context(), actorID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
