package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	ucCart "github.com/BruksfildServices01/food-storefront/internal/usecase/cart"
)

type CartUseCases struct {
	Add         *ucCart.AddItem
	Get         *ucCart.GetCart
	SetQuantity *ucCart.SetQuantity
	Remove      *ucCart.RemoveItem
	Clear       *ucCart.ClearCart
}

type CartHandler struct {
	uc  CartUseCases
	log *zap.Logger
}

func NewCartHandler(uc CartUseCases, log *zap.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

type AddToCartRequest struct {
	UserID      uint             `json:"user_id" binding:"required"`
	ProductID   uint             `json:"product_id" binding:"required"`
	Quantity    *int             `json:"quantity"`
	ProductData *ucCart.Snapshot `json:"product_data"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Add(c *gin.Context) {
	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	msg, err := h.uc.Add.Execute(c.Request.Context(), middleware.Actor(c), ucCart.AddItemInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  qty,
		Snapshot:  req.ProductData,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, msg, nil)
}

func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.uc.Get.Execute(c.Request.Context(), middleware.Actor(c), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"cart": view.Items, "total": view.Total})
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	cartID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req QuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.uc.SetQuantity.Execute(c.Request.Context(), middleware.Actor(c), cartID, req.Quantity); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucCart.MsgQuantityUpdated, nil)
}

func (h *CartHandler) Remove(c *gin.Context) {
	cartID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Remove.Execute(c.Request.Context(), middleware.Actor(c), cartID); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucCart.MsgRemoved, nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Clear.Execute(c.Request.Context(), middleware.Actor(c), userID); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucCart.MsgCleared, nil)
}
