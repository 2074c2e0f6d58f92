package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_FindRoute(t *testing.T) {
	config := &Config{}
	config.Init()
	router := NewRouter(config.Routes)

	var useCases = []struct {
		description string
		method      string
		uri         string
		expected    string
		expectError bool
	}{
		{
			description: "users route",
			method:      http.MethodGet,
			uri:         "/api/users",
			expected:    "users",
		},
		{
			description: "orders route",
			method:      http.MethodGet,
			uri:         "/api/orders",
			expected:    "orders",
		},
		{
			description: "unknown resource",
			method:      http.MethodGet,
			uri:         "/api/unknownthing",
			expectError: true,
		},
		{
			description: "unrelated path",
			method:      http.MethodGet,
			uri:         "/other",
			expectError: true,
		},
		{
			description: "post is not routable",
			method:      http.MethodPost,
			uri:         "/api/users",
			expectError: true,
		},
	}

	for _, useCase := range useCases {
		request := httptest.NewRequest(useCase.method, "http://127.0.0.1:3003"+useCase.uri, nil)
		route, err := router.FindRoute(request)
		if useCase.expectError {
			assert.NotNil(t, err, useCase.description)
			continue
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.Equal(t, useCase.expected, route.Resource, useCase.description)
	}
}
