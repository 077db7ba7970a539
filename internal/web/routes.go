package web

func (s *Server) setupRoutes() {
	r := s.router

	r.GET("/", s.singlePage)
	r.GET("/tiers", s.multiPage)

	ui := r.Group("/ui")
	{
		ui.POST("/single/search", s.singleSearch)
		ui.POST("/single/rarity", s.singleRarity)
		ui.POST("/multi/search", s.multiSearch)
		ui.POST("/multi/toggle", s.multiToggle)
	}

	api := r.Group("/api")
	{
		api.GET("/champions", s.apiChampions)
		api.GET("/stats", s.apiStats)
		api.GET("/suggest", s.apiSuggest)
	}

	r.GET("/export.xlsx", s.exportXLSX)
	r.GET("/health", NewHealthController(s).CheckHealth)

	if s.deps.IconDir != "" {
		r.Static(IconPrefix, s.deps.IconDir)
	}
}
