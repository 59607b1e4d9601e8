package handlers

import (
	"net/http"

	"storefront-api/catalog"
	"storefront-api/models"
	"storefront-api/statemachine"

	"github.com/gin-gonic/gin"
)

type ProductQuery struct {
	Search  string         `form:"search"`
	VegFlag models.VegFlag `form:"veg_flag" binding:"omitempty,oneof=VEG NON_VEG NA"`
	VegOnly bool           `form:"veg_only"`
	Limit   int            `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset  int            `form:"offset" binding:"omitempty,min=0"`
}

func (q ProductQuery) options() catalog.QueryOptions {
	return catalog.QueryOptions{
		VegFlag: q.VegFlag,
		VegOnly: q.VegOnly,
		Search:  q.Search,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

func bindProductQuery(c *gin.Context) (ProductQuery, bool) {
	var q ProductQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return q, false
	}
	return q, true
}

func serviceParam(c *gin.Context) (models.Service, bool) {
	service := models.Service(c.Param("service"))
	if !service.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service: " + string(service)})
		return "", false
	}
	return service, true
}

func (h *Handler) recordQuery(listing, service string) {
	if h.Metrics != nil {
		h.Metrics.CatalogQuery(listing, service)
	}
}

// ListServices returns the catalog verticals
func (h *Handler) ListServices(c *gin.Context) {
	products, chefs := h.Catalog.Counts()
	c.JSON(http.StatusOK, gin.H{
		"services":       models.Services,
		"total_products": products,
		"total_chefs":    chefs,
	})
}

// ListProducts searches across every service (public)
func (h *Handler) ListProducts(c *gin.Context) {
	q, ok := bindProductQuery(c)
	if !ok {
		return
	}
	items := h.Catalog.ListAll(q.options())
	h.recordQuery("all", "")
	c.JSON(http.StatusOK, gin.H{"count": len(items), "products": items})
}

// ListServiceProducts returns one service's products (public)
func (h *Handler) ListServiceProducts(c *gin.Context) {
	service, ok := serviceParam(c)
	if !ok {
		return
	}
	q, ok := bindProductQuery(c)
	if !ok {
		return
	}
	items := h.Catalog.ListByService(service, q.options())
	h.recordQuery("service", string(service))
	c.JSON(http.StatusOK, gin.H{"service": service, "count": len(items), "products": items})
}

// GetServiceSections groups a service listing into category sections for display
func (h *Handler) GetServiceSections(c *gin.Context) {
	service, ok := serviceParam(c)
	if !ok {
		return
	}
	q, ok := bindProductQuery(c)
	if !ok {
		return
	}
	mode := models.VegMode(c.DefaultQuery("veg_mode", string(models.VegModeAll)))
	switch mode {
	case models.VegModeAll, models.VegModeVeg, models.VegModeNonVeg:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "veg_mode must be one of: ALL VEG NON_VEG"})
		return
	}

	items := h.Catalog.ListByService(service, q.options())
	h.recordQuery("sections", string(service))
	c.JSON(http.StatusOK, gin.H{
		"service":  service,
		"veg_mode": mode,
		"sections": catalog.GroupByCategory(items, mode),
	})
}

// GetProduct returns a single product, available or not
func (h *Handler) GetProduct(c *gin.Context) {
	p, ok := h.Catalog.GetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *Handler) ListChefs(c *gin.Context) {
	chefs := h.Catalog.ListChefs()
	h.recordQuery("chefs", string(models.ServiceLiveChef))
	c.JSON(http.StatusOK, gin.H{"count": len(chefs), "chefs": chefs})
}

func (h *Handler) GetChef(c *gin.Context) {
	chef, ok := h.Catalog.GetChefByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chef": chef})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range models.OrderStatuses {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"enforced":        h.StrictTransitions,
		"description":     "Storefront Order Lifecycle State Machine",
	})
}
