package gateway

import "net/http"

type (
	//Routes represents a route collection
	Routes []*Route

	//Route represents a resource forwarding rule
	Route struct {
		Resource   string
		URI        string
		HTTPMethod string
		Upstream   *Upstream
	}

	//Upstream represents a backend address a route forwards to
	Upstream struct {
		URL  string
		Path string
	}
)

//Init sets default route values derived from the resource name
func (r *Route) Init() {
	if r.HTTPMethod == "" {
		r.HTTPMethod = http.MethodGet
	}
	if r.URI == "" && r.Resource != "" {
		r.URI = "/api/" + r.Resource
	}
	if r.Upstream != nil && r.Upstream.Path == "" && r.Resource != "" {
		r.Upstream.Path = "/" + r.Resource
	}
}

//Target returns the upstream request URL
func (r *Route) Target() string {
	if r.Upstream == nil {
		return ""
	}
	return r.Upstream.URL + r.Upstream.Path
}
