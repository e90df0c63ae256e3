package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		pool := api.Group("/pool")
		{
			pool.GET("", s.handleGetPool)
			pool.GET("/reserves", s.handleGetReserves)
			pool.GET("/price", s.handleGetPrice)
			pool.GET("/amount-out", s.handleGetAmountOut)
			pool.GET("/quote", s.handleGetQuote)
		}

		api.GET("/balances/:address", s.handleGetBalances)
	}
}
