package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// photoCacheControl keeps clients from re-requesting a resolved photo for a
// day; the underlying record barely changes.
const photoCacheControl = "public, max-age=86400"

// getVenuePhoto resolves and returns the photo record for a venue. Absence is
// a 404, not an error.
func (s *Server) getVenuePhoto(c echo.Context) error {
	id := c.Param("id")
	name := c.QueryParam("name")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue id is required")
	}

	if _, ok := s.photos.Resolve(c.Request().Context(), id, name, nil); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no photo found for venue")
	}
	rec, ok := s.photos.CachedRecord(c.Request().Context(), id, name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no photo found for venue")
	}

	c.Response().Header().Set("Cache-Control", photoCacheControl)
	return c.JSON(http.StatusOK, rec)
}

// getVenuePhotoRaw streams the resolved photo bytes through the service so
// browser clients never hit the photo host cross-origin.
func (s *Server) getVenuePhotoRaw(c echo.Context) error {
	id := c.Param("id")
	name := c.QueryParam("name")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue id is required")
	}

	url, ok := s.photos.Resolve(c.Request().Context(), id, name, nil)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no photo found for venue")
	}

	data, contentType, err := s.images.FetchImage(c.Request().Context(), url)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", photoCacheControl)
	return c.Blob(http.StatusOK, contentType, data)
}
