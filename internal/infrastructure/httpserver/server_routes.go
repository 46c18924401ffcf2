package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	api.GET("/search", s.search)
	api.GET("/search/map", s.searchMap)

	venues := api.Group("/venues")
	venues.GET("/:id", s.getVenue)
	venues.GET("/:id/links", s.getVenueLinks)
	venues.GET("/:id/photo", s.getVenuePhoto)
	venues.GET("/:id/photo/raw", s.getVenuePhotoRaw)

	featured := api.Group("/featured")
	featured.GET("/climbing", s.getFeaturedClimbing)
	featured.GET("/top-rated", s.getFeaturedTopRated)
}
