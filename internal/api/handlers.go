package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schedcu/orsched/internal/api/response"
	"github.com/schedcu/orsched/internal/repository"
)

// Health returns the process liveness status.
func (r *Router) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Success(map[string]interface{}{"status": "UP"}))
}

// HealthDB returns a handler reporting database connectivity.
func (r *Router) HealthDB(db repository.Database) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, response.ErrorWithCode("DATABASE_UNAVAILABLE", err.Error()))
		}
		return c.JSON(http.StatusOK, response.Success(map[string]interface{}{"database": "UP"}))
	}
}
