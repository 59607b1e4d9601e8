package handlers

import (
	"errors"
	"math"
	"net/http"
	"slices"
	"strconv"

	"storefront-api/middleware"

	"github.com/gin-gonic/gin"
)

type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required,in_phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,in_phone"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// RequestOTP issues a login code for a mobile number
func (h *Handler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	phone := NormalizePhone(req.Phone)

	code, wait, err := h.OTP.Issue(phone)
	if errors.Is(err, ErrOTPCooldown) {
		seconds := int(math.Ceil(wait.Seconds()))
		c.Header("Retry-After", strconv.Itoa(seconds))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "Please wait before requesting another code",
			"retry_after": seconds,
		})
		return
	}
	if err != nil {
		h.logger().Error("otp issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send code"})
		return
	}

	resp := gin.H{
		"message":      "Code sent",
		"phone":        phone,
		"expires_in":   int(otpTTL.Seconds()),
		"resend_after": int(otpCooldown.Seconds()),
	}
	if h.EchoOTP {
		resp["code"] = code
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP exchanges a valid code for a JWT
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	phone := NormalizePhone(req.Phone)

	if err := h.OTP.Verify(phone, req.Code); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	role := middleware.RoleCustomer
	if slices.Contains(h.AdminPhones, phone) {
		role = middleware.RoleAdmin
	}
	userID := "user_" + phone
	token, err := middleware.GenerateToken(userID, phone, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.openSession(userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    userID,
			"phone": phone,
			"role":  role,
		},
	})
}

// GetProfile returns the authenticated user's identity and session summary
func (h *Handler) GetProfile(c *gin.Context) {
	s := h.session(c)
	cart := s.Cart.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    s.UserID,
			"phone": c.GetString("phone"),
			"role":  middleware.GetRole(c),
		},
		"cart_items": cart.TotalQuantity(),
		"orders":     s.Orders.Snapshot().Len(),
		"addresses":  s.Addresses.Snapshot().Len(),
	})
}

func (h *Handler) openSession(userID string) {
	if _, exists := h.Sessions.Lookup(userID); exists {
		return
	}
	h.Sessions.Get(userID)
	h.logger().Info("session opened", "user_id", userID)
}
