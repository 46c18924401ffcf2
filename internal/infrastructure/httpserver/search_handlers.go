package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/ports"
)

// Search handlers. Handlers only shape the request and response; all
// aggregation, filtering and enrichment semantics live in the services.

// defaultPartySize stands in when the client omits partySize, so a request
// carrying only a day still gets availability enrichment for a table of two.
const defaultPartySize = 2

func (s *Server) search(c echo.Context) error {
	filters, err := parseFilters(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	geo, err := s.parseRadiusScope(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := s.searchSvc.Search(c.Request().Context(), filters.Query, filters, geo)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// searchMap serves the map view: the same search pipeline scoped to a
// bounding box instead of a center radius.
func (s *Server) searchMap(c echo.Context) error {
	filters, err := parseFilters(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	box, err := parseBoundingBox(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := s.searchSvc.Search(c.Request().Context(), filters.Query, filters, search.GeoScope{BoundingBox: box})
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func parseFilters(c echo.Context) (*search.Filters, error) {
	filters := &search.Filters{
		Query:       c.QueryParam("query"),
		Cuisines:    splitCSV(c.QueryParam("cuisines")),
		Day:         c.QueryParam("day"),
		DesiredTime: c.QueryParam("time"),
	}

	var err error
	if filters.PriceRanges, err = parseIntList(c.QueryParam("priceRanges")); err != nil {
		return nil, errors.New("priceRanges must be comma-separated integers")
	}
	if filters.AvailableOnly, err = parseBool(c.QueryParam("availableOnly")); err != nil {
		return nil, errors.New("availableOnly must be a boolean")
	}
	if filters.NotReleasedOnly, err = parseBool(c.QueryParam("notReleasedOnly")); err != nil {
		return nil, errors.New("notReleasedOnly must be a boolean")
	}
	if filters.PartySize, err = parseInt(c.QueryParam("partySize"), defaultPartySize); err != nil {
		return nil, errors.New("partySize must be an integer")
	}
	if filters.Offset, err = parseInt(c.QueryParam("offset"), 0); err != nil {
		return nil, errors.New("offset must be an integer")
	}
	if filters.PageSize, err = parseInt(c.QueryParam("perPage"), 0); err != nil {
		return nil, errors.New("perPage must be an integer")
	}
	return filters, nil
}

// parseRadiusScope builds a center+radius scope, falling back to the
// configured city center when the client sends no coordinates.
func (s *Server) parseRadiusScope(c echo.Context) (search.GeoScope, error) {
	geo := search.GeoScope{
		Latitude:  s.searchCfg.DefaultLatitude,
		Longitude: s.searchCfg.DefaultLongitude,
		Radius:    s.searchCfg.DefaultRadius,
	}

	lat, lng := c.QueryParam("lat"), c.QueryParam("lng")
	if lat != "" || lng != "" {
		if lat == "" || lng == "" {
			return geo, errors.New("lat and lng must be given together")
		}
		var err error
		if geo.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
			return geo, errors.New("lat must be a number")
		}
		if geo.Longitude, err = strconv.ParseFloat(lng, 64); err != nil {
			return geo, errors.New("lng must be a number")
		}
	}
	if radius := c.QueryParam("radius"); radius != "" {
		r, err := strconv.Atoi(radius)
		if err != nil || r <= 0 {
			return geo, errors.New("radius must be a positive integer")
		}
		geo.Radius = r
	}
	return geo, nil
}

// parseBoundingBox reads the four map-view corners: south-west then
// north-east.
func parseBoundingBox(c echo.Context) ([]float64, error) {
	names := []string{"swLat", "swLng", "neLat", "neLng"}
	box := make([]float64, 0, len(names))
	for _, name := range names {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil, errors.New("map search requires swLat, swLng, neLat and neLng")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New(name + " must be a number")
		}
		box = append(box, v)
	}
	return box, nil
}

func (s *Server) mapServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, search.ErrInvalidFilter):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrUpstreamUnavailable):
		s.logger.WithError(err).Error("upstream failure serving request")
		return echo.NewHTTPError(http.StatusBadGateway, "upstream search is unavailable")
	default:
		s.logger.WithError(err).Error("internal failure serving request")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntList(raw string) ([]int, error) {
	parts := splitCSV(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
