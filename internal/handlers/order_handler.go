package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	ucOrder "github.com/BruksfildServices01/food-storefront/internal/usecase/order"
)

type OrderUseCases struct {
	Create       *ucOrder.CreateOrder
	List         *ucOrder.ListOrders
	ListAll      *ucOrder.ListAllOrders
	Items        *ucOrder.GetOrderItems
	UpdateStatus *ucOrder.UpdateOrderStatus
	SetStatus    *ucOrder.SetOrderStatus
	Delete       *ucOrder.DeleteOrder
}

type OrderHandler struct {
	uc  OrderUseCases
	log *zap.Logger
}

func NewOrderHandler(uc OrderUseCases, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrderRequest struct {
	UserID        uint             `json:"user_id" binding:"required"`
	UserData      ucOrder.Customer `json:"user_data"`
	CartItems     []domain.Line    `json:"cart_items"`
	PaymentMethod string           `json:"payment_method"`
}

type OrderActionRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Action string `json:"action"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.uc.Create.Execute(c.Request.Context(), middleware.Actor(c), ucOrder.CreateOrderInput{
		UserID:        req.UserID,
		Customer:      req.UserData,
		Items:         req.CartItems,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucOrder.MsgOrderPlaced, gin.H{"order_id": res.OID})
}

// ListMine lists the orders of the user in the path.
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	orders, err := h.uc.List.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		userID,
		c.DefaultQuery("status", "all"),
		c.DefaultQuery("sort", "ASC"),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "orders", orders)
}

func (h *OrderHandler) Items(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.uc.Items.Execute(c.Request.Context(), middleware.Actor(c), orderID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "items", items)
}

// UpdateStatus applies a customer action to the order with the public
// id in the path.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req OrderActionRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.uc.UpdateStatus.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		c.Param("id"),
		req.UserID,
		req.Action,
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucOrder.MsgStatusUpdated, nil)
}

// ======================================================
// BACK OFFICE
// ======================================================

func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.uc.ListAll.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		c.DefaultQuery("status", "all"),
		c.Query("search"),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "orders", orders)
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.uc.SetStatus.Execute(c.Request.Context(), middleware.Actor(c), orderID, req.Status); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucOrder.MsgStaffStatusUpdated, nil)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.Actor(c), orderID); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucOrder.MsgOrderDeleted, nil)
}
