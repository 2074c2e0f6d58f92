package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopmesh/shopmesh/gateway"
	"github.com/shopmesh/shopmesh/gateway/stat"
	"github.com/shopmesh/shopmesh/health"
	"github.com/shopmesh/shopmesh/resource"
	"github.com/viant/afs"
	"github.com/viant/gmetric"
)

const metricURI = "/v1/metrics/"

//Service represents a request forwarding service
type Service struct {
	config  *gateway.Config
	router  *gateway.Router
	client  *http.Client
	fs      afs.Service
	Metrics *gmetric.Service
	stats   *gmetric.Operation
	access  *accessLogger
	server  *http.Server
}

//Do classifies an inbound request and answers it locally or relays the matched upstream response,
//every failure is scoped to a single request
func (s *Service) Do(writer http.ResponseWriter, request *http.Request) {
	if request.Method == http.MethodGet && request.URL.Path == s.config.HealthURI {
		health.Write(writer, s.config.Name)
		return
	}
	recentCounter, onDone, values := stat.ProxyBegin(s.stats)
	defer stat.ProxyEnd(s.stats, recentCounter, onDone, values)
	requestID := uuid.New().String()
	startTime := time.Now()

	route, err := s.router.FindRoute(request)
	if err != nil {
		values.Append(stat.Unmatched)
		s.writeError(writer, http.StatusNotFound, fmt.Sprintf("unknown resource: %v", request.URL.Path))
		s.logAccess(requestID, request.URL.Path, http.StatusNotFound, startTime)
		return
	}
	response, err := s.forward(request, route, values)
	if err != nil {
		values.Append(err)
		values.Append(stat.UpstreamError)
		if isTimeout(err) {
			values.Append(stat.Timeout)
		}
		s.writeError(writer, http.StatusBadGateway, fmt.Sprintf("upstream %v was unavailable", route.Resource))
		s.logAccess(requestID, route.Resource, http.StatusBadGateway, startTime)
		return
	}
	values.Append(stat.Relayed)
	response.Relay(writer)
	s.logAccess(requestID, route.Resource, response.StatusCode, startTime)
}

//forward issues an outbound call bounded by the configured timeout, the bound covers
//all attempts, a transport failure is retried at most once while the deadline allows
func (s *Service) forward(request *http.Request, route *gateway.Route, values *stat.Values) (*UpstreamResponse, error) {
	ctx, cancel := context.WithTimeout(request.Context(), s.config.Timeout())
	defer cancel()
	var err error
	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			values.Append(stat.Retry)
		}
		var outbound *http.Request
		outbound, err = http.NewRequestWithContext(ctx, route.HTTPMethod, route.Target(), nil)
		if err != nil {
			return nil, err
		}
		var response *http.Response
		response, err = s.client.Do(outbound)
		if err == nil {
			return NewUpstreamResponse(response)
		}
		if ctx.Err() != nil { //deadline passed or client went away
			break
		}
	}
	if err == nil {
		err = fmt.Errorf("no forwarding attempt was made for %v", route.Resource)
	}
	return nil, err
}

func (s *Service) writeError(writer http.ResponseWriter, statusCode int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	json.NewEncoder(writer).Encode(map[string]string{"error": message})
}

func (s *Service) logAccess(requestID, resource string, statusCode int, startTime time.Time) {
	if s.access == nil {
		return
	}
	if err := s.access.Log(requestID, resource, statusCode, time.Since(startTime)); err != nil {
		log.Printf("failed to log access: %v", err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

//Start starts the gateway endpoint, upstreams do not have to be up,
//requests issued before they are simply fail with 502
func (s *Service) Start() error {
	mux := &http.ServeMux{}
	mux.HandleFunc("/", s.Do)
	s.server = &http.Server{
		Addr:    ":" + strconv.Itoa(s.config.Port),
		Handler: mux,
	}
	s.StartMetricsEndpoint()
	s.shutdownOnInterrupt()
	fmt.Printf("starting %v endpoint: %v\n", s.config.Name, s.config.Port)
	return s.server.ListenAndServe()
}

//StartMetricsEndpoint exposes gmetric counters over HTTP
func (s *Service) StartMetricsEndpoint() {
	if s.config.MetricPort == 0 {
		return
	}
	mux := http.NewServeMux()
	mux.Handle(metricURI, gmetric.NewHandler(metricURI, s.Metrics))
	server := &http.Server{
		Addr:    ":" + strconv.Itoa(s.config.MetricPort),
		Handler: mux,
	}
	fmt.Printf("starting metric endpoint: %v\n", s.config.MetricPort)
	go server.ListenAndServe()
}

func (s *Service) shutdownOnInterrupt() {
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint
		if err := s.Shutdown(context.Background()); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()
}

//Shutdown stops the endpoint and closes the access log
func (s *Service) Shutdown(ctx context.Context) error {
	errs := &resource.Errors{}
	if s.server != nil {
		errs.Append(s.server.Shutdown(ctx))
	}
	if s.access != nil {
		errs.Append(s.access.Close())
	}
	if errs.HasError() {
		return errs
	}
	return nil
}

//New creates a request forwarding service
func New(config *gateway.Config) (*Service, error) {
	config.Init()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	srv := &Service{
		config:  config,
		router:  gateway.NewRouter(config.Routes),
		client:  newClient(config.Concurrency),
		fs:      afs.New(),
		Metrics: gmetric.New(),
	}
	if config.AccessLog != nil {
		access, err := newAccessLogger(config.AccessLog, srv.fs)
		if err != nil {
			return nil, err
		}
		srv.access = access
	}
	location := reflect.TypeOf(Service{}).PkgPath()
	srv.stats = srv.Metrics.MultiOperationCounter(location, stat.ProxyMetricName, "proxy performance", time.Microsecond, time.Microsecond, 3, stat.NewProxy())
	return srv, nil
}
