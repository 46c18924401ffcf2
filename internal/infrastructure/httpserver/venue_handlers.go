package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const defaultFeaturedLimit = 20

// Venue handlers
func (s *Server) getVenue(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue id is required")
	}

	rec, err := s.venueSvc.Details(c.Request().Context(), id)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) getVenueLinks(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue id is required")
	}

	links, err := s.venueSvc.Links(c.Request().Context(), id)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, links)
}

func (s *Server) getFeaturedClimbing(c echo.Context) error {
	return s.featured(c, "climbing")
}

func (s *Server) getFeaturedTopRated(c echo.Context) error {
	return s.featured(c, "top_rated")
}

func (s *Server) featured(c echo.Context, list string) error {
	limit, err := parseInt(c.QueryParam("limit"), defaultFeaturedLimit)
	if err != nil || limit <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
	}

	records, err := s.venueSvc.Featured(c.Request().Context(), list, limit)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": records})
}
