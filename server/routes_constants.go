package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// User Routes - Login & Logout
	RouteUserLogin  = "/user/login"
	RouteUserLogout = "/user/logout"
	RouteUserInfo   = "/user/info"

	// Protected Routes
	RouteHello = "/hello"

	// Operational Routes
	RouteHealth = "/health"
)

// AuthorityHello is required to call RouteHello.
const AuthorityHello = "test"
