package handlers

import (
	"net/http"

	"carpicks_backend/internal/middleware"
	"carpicks_backend/internal/services"
	"carpicks_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	*BaseHandler
	carService services.CarService
}

func NewCarHandler(base *BaseHandler, carService services.CarService) *CarHandler {
	return &CarHandler{
		BaseHandler: base,
		carService:  carService,
	}
}

// RegisterRoutes registers the listing routes. Reads of a single listing,
// partial updates and the brand aggregation are public; creating, listing
// all cars and deleting require a session.
func (h *CarHandler) RegisterRoutes(rg *gin.RouterGroup, session gin.HandlerFunc) {
	cars := rg.Group("/cars")
	{
		cars.POST("", session, h.Create)
		cars.GET("", session, h.List)
		cars.GET("/groupByBrand", h.GroupByBrand)
		cars.GET("/:id", h.GetByID)
		cars.PATCH("/:id", h.Update)
		cars.DELETE("/:id", session, h.Delete)
	}
}

func (h *CarHandler) Create(c *gin.Context) {
	var req dto.CreateCarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	userID := middleware.GetUserID(c)

	car, err := h.carService.Create(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   car,
	})
}

func (h *CarHandler) GetByID(c *gin.Context) {
	db := h.GetDB(c)

	car, err := h.carService.GetByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   car,
	})
}

func (h *CarHandler) Update(c *gin.Context) {
	var req dto.UpdateCarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	car, err := h.carService.Update(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   car,
	})
}

func (h *CarHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)
	userID := middleware.GetUserID(c)

	if err := h.carService.Delete(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Car deleted successfully",
	})
}

func (h *CarHandler) List(c *gin.Context) {
	db := h.GetDB(c)

	cars, err := h.carService.List(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(cars),
		"data":    cars,
	})
}

// GroupByBrand returns the per-brand average daily price
func (h *CarHandler) GroupByBrand(c *gin.Context) {
	db := h.GetDB(c)

	rows, err := h.carService.GroupByBrand(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   rows,
	})
}
