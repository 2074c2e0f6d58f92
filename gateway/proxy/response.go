package proxy

import (
	"io"
	"net/http"
)

//UpstreamResponse represents a captured upstream response relayed verbatim to the caller
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

//Relay writes the captured response unchanged
func (r *UpstreamResponse) Relay(writer http.ResponseWriter) {
	for key, values := range r.Header {
		for _, value := range values {
			writer.Header().Add(key, value)
		}
	}
	writer.WriteHeader(r.StatusCode)
	if len(r.Body) > 0 {
		writer.Write(r.Body)
	}
}

//NewUpstreamResponse captures an upstream response
func NewUpstreamResponse(response *http.Response) (*UpstreamResponse, error) {
	result := &UpstreamResponse{
		StatusCode: response.StatusCode,
		Header:     response.Header,
	}
	if response.Body != nil {
		defer response.Body.Close()
		body, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, err
		}
		result.Body = body
	}
	return result, nil
}
