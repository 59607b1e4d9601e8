package handlers

import (
	"net/http"

	"storefront-api/models"
	"storefront-api/store"

	"github.com/gin-gonic/gin"
)

type adminOrder struct {
	UserID string `json:"user_id"`
	models.Order
}

// AdminGetAllOrders returns every session's orders, admin only
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(status)})
		return
	}
	userFilter := c.Query("user_id")

	orders := []adminOrder{}
	summary := map[models.OrderStatus]int{}
	var totalRevenue float64
	for _, s := range h.Sessions.All() {
		if userFilter != "" && s.UserID != userFilter {
			continue
		}
		for _, o := range s.Orders.Snapshot().All() {
			if status != "" && o.Status != status {
				continue
			}
			summary[o.Status]++
			if o.Status == models.StatusDelivered {
				totalRevenue += o.Total
			}
			orders = append(orders, adminOrder{UserID: s.UserID, Order: o})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetSessions lists the buyer sessions held in memory
func (h *Handler) AdminGetSessions(c *gin.Context) {
	sessions := []gin.H{}
	for _, s := range h.Sessions.All() {
		sessions = append(sessions, gin.H{
			"user_id":    s.UserID,
			"cart_items": s.Cart.Snapshot().TotalQuantity(),
			"orders":     s.Orders.Snapshot().Len(),
			"addresses":  s.Addresses.Snapshot().Len(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(sessions), "sessions": sessions})
}

// AdminUpdateOrderStatus moves any user's order. force skips the lifecycle
// check even when transitions are enforced.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Force  bool               `json:"force"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	s, current, ok := h.Sessions.FindOrder(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	order, err := h.adminSetStatus(s.Orders, current.ID, req.Status, req.Force)
	if !h.writeStatusError(c, err) {
		return
	}
	h.logger().Info("order status changed by admin",
		"order_id", order.ID, "user_id", s.UserID, "from", current.Status, "to", order.Status, "force", req.Force)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": current.Status,
		"new_status":      order.Status,
	})
}

// adminSetStatus is setStatus, except that force always takes the
// permissive path.
func (h *Handler) adminSetStatus(orders *store.Orders, orderID string, status models.OrderStatus, force bool) (models.Order, error) {
	if !force {
		return h.setStatus(orders, orderID, status)
	}
	order, ok := orders.UpdateStatus(orderID, status)
	if !ok {
		return models.Order{}, store.ErrOrderNotFound
	}
	return order, nil
}

// AdminGetHistory returns the latest journal entries
func (h *Handler) AdminGetHistory(c *gin.Context) {
	if h.Journal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order journal is disabled"})
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	status := models.OrderStatus(c.Query("status"))
	entries, err := h.Journal.Recent(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	summary, err := h.Journal.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "summary": summary, "history": entries})
}
