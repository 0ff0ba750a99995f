package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant/repository"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant/service"
)

// Register wires the directory endpoints under /api.
func Register(r *gin.Engine, svc *service.Service) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API is running"})
	})

	api.GET("/regions", func(c *gin.Context) {
		regions, err := svc.Regions(c.Request.Context(), c.Query("country"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, regions)
	})

	api.GET("/cities", func(c *gin.Context) {
		cities, err := svc.Cities(c.Request.Context(), c.Query("country"), c.Query("state"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cities)
	})

	api.GET("/restaurants/search", func(c *gin.Context) {
		rs, err := svc.Search(c.Request.Context(), c.Query("q"), c.Query("country"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rs)
	})

	api.GET("/restaurants/location", func(c *gin.Context) {
		p := service.ParseListParams(
			c.Query("country"), c.Query("state"), c.Query("city"), c.Query("cuisine"),
			c.Query("page"), c.Query("limit"), c.Query("sort"), c.Query("direction"),
		)
		res, err := svc.ListByLocation(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})

	api.GET("/restaurants/postal/:postalCode", func(c *gin.Context) {
		rs, err := svc.PostalLookup(c.Request.Context(), c.Param("postalCode"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rs)
	})

	api.GET("/restaurants/:id", func(c *gin.Context) {
		r, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	})

	api.POST("/restaurants", func(c *gin.Context) {
		var r restaurant.Restaurant
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if _, err := svc.Create(c.Request.Context(), &r); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	})

	api.PUT("/restaurants/:id", func(c *gin.Context) {
		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	api.DELETE("/restaurants/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
	})
}

// fail maps service errors onto the API error contract: missing required
// parameters and validation failures are 400, unknown ids are 404, everything
// else surfaces as a 500 carrying the underlying message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCountry),
		errors.Is(err, service.ErrMissingQuery),
		errors.Is(err, restaurant.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
