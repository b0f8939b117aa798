package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, s.HealthHandler())

	// LOGIN
	s.RegisterRouteFunc("POST "+RouteUserLogin, s.LoginHandler())
	// Logout accepts any method
	s.RegisterRouteFunc(RouteUserLogout, ChainMiddleware(s.LogoutHandler(), s.RequireLogin))
	s.RegisterRouteFunc("GET "+RouteUserInfo, ChainMiddleware(s.UserInfoHandler(), s.RequireLogin))

	s.RegisterRouteFunc("GET "+RouteHello, ChainMiddleware(s.HelloHandler(), s.RequireAuthority(AuthorityHello)))
}
