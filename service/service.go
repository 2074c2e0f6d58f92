package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopmesh/shopmesh/health"
	"github.com/shopmesh/shopmesh/resource"
	"github.com/viant/afs"
)

//Appender validates and encodes an inbound record before it is added to the store
type Appender interface {
	Append(store *Store, data []byte) ([]byte, error)
}

//Service represents a backend resource service
type Service struct {
	config   *Config
	store    *Store
	appender Appender
	fs       afs.Service
	watcher  *resource.Watcher
	server   *http.Server
}

//Store returns the service store
func (s *Service) Store() *Store {
	return s.store
}

//Handler returns the service HTTP handler
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.HealthURI, health.Handler(s.config.Name))
	mux.HandleFunc(s.config.URI, s.handleResource)
	return mux
}

func (s *Service) handleResource(writer http.ResponseWriter, request *http.Request) {
	switch request.Method {
	case http.MethodGet:
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusOK)
		writer.Write(s.store.Payload())
	case http.MethodPost:
		s.handleAppend(writer, request)
	default:
		http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Service) handleAppend(writer http.ResponseWriter, request *http.Request) {
	if s.appender == nil {
		http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := readBody(request)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	stored, err := s.appender.Append(s.store, data)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusCreated)
	writer.Write(stored)
}

func readBody(request *http.Request) ([]byte, error) {
	if request.Body == nil {
		return nil, errors.New("request body was empty")
	}
	defer request.Body.Close()
	data, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("request body was empty")
	}
	return data, nil
}

//Init loads the seed payload and starts the seed watcher when configured
func (s *Service) Init(ctx context.Context) error {
	if s.config.SeedURL == "" {
		return nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.config.SeedURL)
	if err != nil {
		return errors.Wrapf(err, "failed to load seed %v", s.config.SeedURL)
	}
	if err = s.store.Replace(data); err != nil {
		return err
	}
	if s.config.WatchFrequencyMs > 0 {
		s.watcher = resource.New(s.config.SeedURL, s.config.WatchFrequency())
		s.watcher.Watch(ctx, s.fs, func(data []byte) {
			if err := s.store.Replace(data); err != nil {
				log.Printf("failed to reload seed %v: %v", s.config.SeedURL, err)
			}
		}, func(err error) {
			log.Printf("failed to check seed %v: %v", s.config.SeedURL, err)
		})
	}
	return nil
}

//Start starts the service endpoint
func (s *Service) Start() error {
	if err := s.Init(context.Background()); err != nil {
		return err
	}
	s.server = &http.Server{
		Addr:    ":" + strconv.Itoa(s.config.Port),
		Handler: s.Handler(),
	}
	s.shutdownOnInterrupt()
	fmt.Printf("starting %v endpoint: %v\n", s.config.Name, s.config.Port)
	return s.server.ListenAndServe()
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

//Shutdown stops the endpoint
func (s *Service) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

//New creates a backend resource service
func New(config *Config, store *Store, appender Appender) (*Service, error) {
	config.Init()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		store = NewStore()
	}
	return &Service{
		config:   config,
		store:    store,
		appender: appender,
		fs:       afs.New(),
	}, nil
}
