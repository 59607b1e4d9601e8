package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"storefront-api/models"
	"storefront-api/statemachine"
	"storefront-api/store"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	AddressID string `json:"address_id"`
	Notes     string `json:"notes" binding:"max=500"`
}

// Checkout places an order from the caller's cart and empties the cart
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	s := h.session(c)
	if s.Cart.Snapshot().Len() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	addresses := s.Addresses.Snapshot()
	var (
		addr models.Address
		ok   bool
	)
	switch {
	case req.AddressID != "":
		if addr, ok = addresses.ByID(req.AddressID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
	default:
		if addr, ok = addresses.Selected(); !ok {
			addr, ok = addresses.Default()
		}
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a delivery address before checkout"})
		return
	}

	// a concurrent checkout may have taken the lines already
	items := s.Cart.Drain()
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	order := s.Orders.CreateFromCart(items, req.Notes, &addr)
	h.logger().Info("order placed",
		"user_id", s.UserID, "order_id", order.ID, "order_number", order.OrderNumber, "total", order.Total)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns the caller's orders, newest first
func (h *Handler) GetMyOrders(c *gin.Context) {
	state := h.session(c).Orders.Snapshot()
	var orders []models.Order
	if status := models.OrderStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(status)})
			return
		}
		orders = state.ByStatus(status)
	} else {
		orders = state.All()
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

func (h *Handler) GetRecentOrders(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	orders := h.session(c).Orders.Snapshot().Recent(limit)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order with its status history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, ok := h.session(c).Orders.Snapshot().ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	resp := gin.H{
		"order":           order,
		"minutes_elapsed": int(time.Since(order.CreatedAt).Minutes()),
		"valid_next":      statemachine.ValidTransitionsFrom(order.Status),
	}
	if h.Journal != nil {
		history, err := h.Journal.History(c.Request.Context(), order.ID)
		if err != nil {
			h.logger().Error("failed to load order history", "order_id", order.ID, "error", err)
		} else {
			resp["status_history"] = history
		}
	}
	c.JSON(http.StatusOK, resp)
}

// CancelOrder cancels one of the caller's orders; repeating it is harmless
func (h *Handler) CancelOrder(c *gin.Context) {
	orders := h.session(c).Orders
	orderID := c.Param("id")

	order, err := h.setStatus(orders, orderID, models.StatusCancelled)
	if !h.writeStatusError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

// setStatus applies a status change through the checked or the permissive
// path depending on configuration.
func (h *Handler) setStatus(orders *store.Orders, orderID string, status models.OrderStatus) (models.Order, error) {
	if h.StrictTransitions {
		return orders.Transition(orderID, status)
	}
	order, ok := orders.UpdateStatus(orderID, status)
	if !ok {
		return models.Order{}, store.ErrOrderNotFound
	}
	return order, nil
}

// writeStatusError reports err and returns false, or returns true on nil
func (h *Handler) writeStatusError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, statemachine.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Invalid status transition",
			"reason": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
	return false
}
