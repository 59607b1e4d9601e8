package routes

import (
	"storefront-api/handlers"
	"storefront-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/otp", h.RequestOTP)
		public.POST("/auth/verify", h.VerifyOTP)

		// Catalog (no auth needed)
		public.GET("/services", h.ListServices)
		public.GET("/services/:service/products", h.ListServiceProducts)
		public.GET("/services/:service/sections", h.GetServiceSections)
		public.GET("/products", h.ListProducts)
		public.GET("/products/:id", h.GetProduct)
		public.GET("/chefs", h.ListChefs)
		public.GET("/chefs/:id", h.GetChef)

		// State machine info
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", h.GetProfile)
		auth.GET("/stream", h.Stream)
	}

	// ── Buyer routes ───────────────────────────────────────────────
	buyer := r.Group("/api")
	buyer.Use(middleware.AuthRequired(), middleware.RoleRequired(middleware.RoleCustomer, middleware.RoleAdmin))
	{
		buyer.GET("/cart", h.GetCart)
		buyer.POST("/cart/items", h.AddToCart)
		buyer.POST("/cart/items/:productId/increment", h.IncrementCartItem)
		buyer.POST("/cart/items/:productId/decrement", h.DecrementCartItem)
		buyer.DELETE("/cart/items/:productId", h.RemoveCartItem)
		buyer.DELETE("/cart", h.ClearCart)

		buyer.POST("/checkout", h.Checkout)
		buyer.GET("/orders", h.GetMyOrders)
		buyer.GET("/orders/recent", h.GetRecentOrders)
		buyer.GET("/orders/:id", h.GetOrderDetail)
		buyer.PUT("/orders/:id/cancel", h.CancelOrder)

		buyer.GET("/addresses", h.ListAddresses)
		buyer.POST("/addresses", h.AddAddress)
		buyer.PUT("/addresses/selection", h.SelectAddress)
		buyer.PUT("/addresses/:id", h.UpdateAddress)
		buyer.DELETE("/addresses/:id", h.DeleteAddress)
		buyer.PUT("/addresses/:id/default", h.SetDefaultAddress)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(middleware.RoleAdmin))
	{
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.GET("/sessions", h.AdminGetSessions)
		admin.GET("/history", h.AdminGetHistory)
	}
}
