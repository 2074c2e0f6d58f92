package proxy

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopmesh/shopmesh/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	tconfig "github.com/viant/tapper/config"
)

func staticHandler(statusCode int, payload string) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)
		writer.Write([]byte(payload))
	})
}

func TestService_Do(t *testing.T) {
	users := httptest.NewServer(staticHandler(http.StatusOK, `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"}]`))
	defer users.Close()
	products := httptest.NewServer(staticHandler(http.StatusInternalServerError, `{"error":"catalog offline"}`))
	defer products.Close()
	down := httptest.NewServer(staticHandler(http.StatusOK, `[]`))
	downURL := down.URL
	down.Close()
	slow := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writer.WriteHeader(http.StatusOK)
	}))
	defer slow.Close()

	config := &gateway.Config{
		TimeoutMs:  150,
		MaxRetries: 1,
		Routes: gateway.Routes{
			{Resource: "users", Upstream: &gateway.Upstream{URL: users.URL, Path: "/users"}},
			{Resource: "products", Upstream: &gateway.Upstream{URL: products.URL, Path: "/products"}},
			{Resource: "orders", Upstream: &gateway.Upstream{URL: downURL, Path: "/orders"}},
			{Resource: "slow", Upstream: &gateway.Upstream{URL: slow.URL, Path: "/slow"}},
		},
	}
	srv, err := New(config)
	if !assert.Nil(t, err) {
		return
	}

	var useCases = []struct {
		description  string
		uri          string
		expectedCode int
		expectedBody string
		maxElapsed   time.Duration
	}{
		{
			description:  "health does not depend on upstream availability",
			uri:          "/health",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":"Gateway Service is healthy"}`,
		},
		{
			description:  "pass-through of a healthy backend",
			uri:          "/api/users",
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"}]`,
		},
		{
			description:  "repeated read returns identical payload",
			uri:          "/api/users",
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"}]`,
		},
		{
			description:  "upstream application error is relayed unchanged",
			uri:          "/api/products",
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"catalog offline"}`,
		},
		{
			description:  "unknown resource",
			uri:          "/api/unknownthing",
			expectedCode: http.StatusNotFound,
		},
		{
			description:  "trailing slash is not normalized",
			uri:          "/api/users/",
			expectedCode: http.StatusNotFound,
		},
		{
			description:  "unreachable upstream",
			uri:          "/api/orders",
			expectedCode: http.StatusBadGateway,
			maxElapsed:   2 * time.Second,
		},
		{
			description:  "stalled upstream surfaces within the timeout bound",
			uri:          "/api/slow",
			expectedCode: http.StatusBadGateway,
			maxElapsed:   time.Second,
		},
	}

	for _, useCase := range useCases {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "http://127.0.0.1:3003"+useCase.uri, nil)
		startTime := time.Now()
		srv.Do(recorder, request)
		elapsed := time.Since(startTime)
		assert.Equal(t, useCase.expectedCode, recorder.Code, useCase.description)
		if useCase.expectedBody != "" {
			assert.Equal(t, useCase.expectedBody, recorder.Body.String(), useCase.description)
		}
		if useCase.maxElapsed > 0 {
			assert.True(t, elapsed < useCase.maxElapsed, useCase.description)
		}
	}
}

func TestService_DoHealthMethod(t *testing.T) {
	config := &gateway.Config{}
	srv, err := New(config)
	if !assert.Nil(t, err) {
		return
	}
	recorder := httptest.NewRecorder()
	srv.Do(recorder, httptest.NewRequest(http.MethodGet, "http://127.0.0.1:3003/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, `{"status":"Gateway Service is healthy"}`, recorder.Body.String())

	//only GET answers the health contract
	recorder = httptest.NewRecorder()
	srv.Do(recorder, httptest.NewRequest(http.MethodPost, "http://127.0.0.1:3003/health", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestService_DoWithNegativeRetries(t *testing.T) {
	backend := httptest.NewServer(staticHandler(http.StatusOK, `[{"id":1,"name":"John Doe"}]`))
	defer backend.Close()

	config := &gateway.Config{
		TimeoutMs:  200,
		MaxRetries: -1,
		Routes: gateway.Routes{
			{Resource: "users", Upstream: &gateway.Upstream{URL: backend.URL, Path: "/users"}},
		},
	}
	srv, err := New(config)
	if !assert.Nil(t, err) {
		return
	}
	//a misconfigured retry count still forwards exactly once
	recorder := httptest.NewRecorder()
	srv.Do(recorder, httptest.NewRequest(http.MethodGet, "http://127.0.0.1:3003/api/users", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, `[{"id":1,"name":"John Doe"}]`, recorder.Body.String())
}

func TestService_DoRecovery(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if !assert.Nil(t, err) {
		return
	}
	address := listener.Addr().String()
	backend := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: staticHandler(http.StatusOK, `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"}]`)},
	}
	backend.Start()

	config := &gateway.Config{
		TimeoutMs: 200,
		Routes: gateway.Routes{
			{Resource: "users", Upstream: &gateway.Upstream{URL: "http://" + address, Path: "/users"}},
		},
	}
	srv, err := New(config)
	if !assert.Nil(t, err) {
		return
	}

	call := func() *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		srv.Do(recorder, httptest.NewRequest(http.MethodGet, "http://127.0.0.1:3003/api/users", nil))
		return recorder
	}

	recorder := call()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"}]`, recorder.Body.String())

	backend.Close()
	recorder = call()
	assert.Equal(t, http.StatusBadGateway, recorder.Code)

	listener, err = net.Listen("tcp", address)
	if !assert.Nil(t, err) {
		return
	}
	backend = &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: staticHandler(http.StatusOK, `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"}]`)},
	}
	backend.Start()
	defer backend.Close()

	recorder = call()
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestService_AccessLog(t *testing.T) {
	backend := httptest.NewServer(staticHandler(http.StatusOK, `[]`))
	defer backend.Close()

	logURL := "mem://localhost/proxy/access.log"
	config := &gateway.Config{
		TimeoutMs: 200,
		AccessLog: &tconfig.Stream{URL: logURL},
		Routes: gateway.Routes{
			{Resource: "orders", Upstream: &gateway.Upstream{URL: backend.URL, Path: "/orders"}},
		},
	}
	srv, err := New(config)
	if !assert.Nil(t, err) {
		return
	}
	recorder := httptest.NewRecorder()
	srv.Do(recorder, httptest.NewRequest(http.MethodGet, "http://127.0.0.1:3003/api/orders", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	ctx := context.Background()
	err = srv.Shutdown(ctx)
	assert.Nil(t, err)
	exists, _ := afs.New().Exists(ctx, logURL)
	assert.True(t, exists)
}
