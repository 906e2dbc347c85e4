package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"revorz/internal/config"
	"revorz/internal/middleware"
	"revorz/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cartのHTTP
type CartHandler struct {
	cartUC     *usecase.CartUsecase
	checkoutUC *usecase.CheckoutUsecase
}

// DI
func NewCartHandler(cartUC *usecase.CartUsecase, checkoutUC *usecase.CheckoutUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC, checkoutUC: checkoutUC}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	// 数値でも"2"のような文字列でも受ける
	Quantity json.RawMessage `json:"quantity"`
	Color    string          `json:"color"`
	Size     string          `json:"size"`
}

// 数量をゆるくパースする。未指定は0（後段が1にする）、壊れた値は1。
func parseQuantity(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return v
		}
	}

	return 1
}

type UpdateQuantityRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

type RemoveItemRequest struct {
	ItemID int64 `json:"item_id"`
}

type CheckoutRequest struct {
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
}

type CartViewResponse struct {
	OK bool `json:"ok"`
	usecase.CartView
}

type AddCartResponse struct {
	OK bool `json:"ok"`
	usecase.CartView
	Added usecase.CartItemView `json:"added"`
}

type CartCountResponse struct {
	OK    bool  `json:"ok"`
	Count int64 `json:"count"`
}

type CheckoutResponse struct {
	OK bool `json:"ok"`
	usecase.CheckoutOutput
}

// /api/cart配下を登録。セッション必須、ユーザーは任意。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/cart")
	g.Use(middleware.Session(cfg))
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.GET("", h.getCart)
	g.GET("/count", h.getCount)
	g.POST("/add", h.add)
	g.POST("/update-quantity", h.updateQuantity)
	g.POST("/remove", h.remove)
	g.POST("/clear", h.clear)
	g.POST("/checkout", h.checkout)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return badRequest(c, "no session")
	}

	out, err := h.cartUC.GetCartView(c.Request().Context(), sid, middleware.OptionalUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartViewResponse{OK: true, CartView: out})
}

func (h *CartHandler) getCount(c echo.Context) error {
	// セッションが無くても0を返す
	sid, _ := middleware.SessionID(c)

	count, err := h.cartUC.GetCartItemCount(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartCountResponse{OK: true, Count: count})
}

func (h *CartHandler) add(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return badRequest(c, "no session")
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, added, err := h.cartUC.AddToCart(c.Request().Context(), sid, middleware.OptionalUserID(c), usecase.AddToCartInput{
		ProductID: req.ProductID,
		Quantity:  parseQuantity(req.Quantity),
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AddCartResponse{OK: true, CartView: out, Added: added})
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return badRequest(c, "no session")
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.cartUC.UpdateQuantity(c.Request().Context(), sid, req.ItemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartViewResponse{OK: true, CartView: out})
}

func (h *CartHandler) remove(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return badRequest(c, "no session")
	}

	var req RemoveItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.cartUC.RemoveItem(c.Request().Context(), sid, req.ItemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartViewResponse{OK: true, CartView: out})
}

func (h *CartHandler) clear(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return badRequest(c, "no session")
	}

	out, err := h.cartUC.ClearCart(c.Request().Context(), sid, middleware.OptionalUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartViewResponse{OK: true, CartView: out})
}

func (h *CartHandler) checkout(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return badRequest(c, "no session")
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	// 配送先はシリアライズして文字列で保存する
	shipping := ""
	if len(req.ShippingAddress) > 0 {
		shipping = string(req.ShippingAddress)
	}

	out, err := h.checkoutUC.Checkout(c.Request().Context(), sid, middleware.OptionalUserID(c), usecase.CheckoutInput{
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: shipping,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CheckoutResponse{OK: true, CheckoutOutput: out})
}
