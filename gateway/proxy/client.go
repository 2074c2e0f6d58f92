package proxy

import (
	"net/http"
	"time"
)

//newClient creates an upstream HTTP client, the client carries no timeout of its own,
//each forwarding attempt is bounded by the request context deadline
func newClient(concurrency int) *http.Client {
	transport := &http.Transport{
		DisableKeepAlives:   false,
		IdleConnTimeout:     time.Second,
		MaxIdleConns:        concurrency,
		MaxIdleConnsPerHost: concurrency,
	}
	return &http.Client{Transport: transport}
}
