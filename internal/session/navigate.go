package session

import "sync"

// Route is a client page path.
type Route string

// Page routes.
const (
	RouteHome         Route = "/"
	RouteLogin        Route = "/login"
	RouteRegister     Route = "/register"
	RouteDashboard    Route = "/dashboard"
	RouteJobs         Route = "/dashboard/jobs"
	RouteApplications Route = "/dashboard/applications"
	RouteResume       Route = "/dashboard/resume"
	RouteAnalyze      Route = "/dashboard/analyze"
)

// Navigator performs route changes requested by the client (e.g. redirect to login).
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route Route)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route Route) { f(route) }

// NopNavigator ignores every navigation.
var NopNavigator Navigator = NavigatorFunc(func(Route) {})

// RecordingNavigator remembers every route it was asked to visit.
type RecordingNavigator struct {
	mu     sync.Mutex
	routes []Route
}

// Navigate records route.
func (r *RecordingNavigator) Navigate(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Routes returns the visited routes in order.
func (r *RecordingNavigator) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.routes...)
}

// Last returns the most recent route, or "" if none.
func (r *RecordingNavigator) Last() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}
