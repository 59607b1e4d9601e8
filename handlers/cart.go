package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": h.session(c).Cart.Snapshot()})
}

// AddToCart adds a catalog product, snapshotting its current price
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	p, ok := h.Catalog.GetByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if !p.Available() {
		c.JSON(http.StatusConflict, gin.H{"error": "Product '" + p.Name + "' is not available"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart := h.session(c).Cart.AddItem(p, req.Quantity)
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) IncrementCartItem(c *gin.Context) {
	cart := h.session(c).Cart
	productID := c.Param("productId")
	if _, ok := cart.Snapshot().Line(productID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.Increment(productID)})
}

// DecrementCartItem drops the line when its quantity reaches zero
func (h *Handler) DecrementCartItem(c *gin.Context) {
	cart := h.session(c).Cart
	productID := c.Param("productId")
	if _, ok := cart.Snapshot().Line(productID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.Decrement(productID)})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	cart := h.session(c).Cart
	productID := c.Param("productId")
	if _, ok := cart.Snapshot().Line(productID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.RemoveItem(productID)})
}

func (h *Handler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": h.session(c).Cart.Clear()})
}
