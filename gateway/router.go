package gateway

import (
	"net/http"

	"github.com/shopmesh/shopmesh/gateway/matcher"
)

type (
	//Router finds a forwarding route for an inbound request
	Router struct {
		matcher *matcher.Matcher
	}

	matchable struct {
		route *Route
	}
)

func (m *matchable) URI() string {
	return m.route.URI
}

func (m *matchable) Namespaces() []string {
	return []string{m.route.HTTPMethod}
}

//FindRoute returns a route matching request method and path
func (r *Router) FindRoute(request *http.Request) (*Route, error) {
	matched, err := r.matcher.MatchOne(request.Method, request.URL.Path)
	if err != nil {
		return nil, err
	}
	return matched.(*matchable).route, nil
}

//NewRouter creates a router
func NewRouter(routes Routes) *Router {
	matchables := make([]matcher.Matchable, 0, len(routes))
	for _, route := range routes {
		matchables = append(matchables, &matchable{route: route})
	}
	return &Router{matcher: matcher.New(matchables)}
}
