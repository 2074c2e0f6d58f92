package order

import (
	"log"

	"github.com/jessevdk/go-flags"
	"github.com/shopmesh/shopmesh/service"
)

//Options represents order service command line options
type Options struct {
	Port    int    `short:"p" long:"port" description:"listen port" default:"3002"`
	SeedURL string `short:"s" long:"seed" description:"seed payload URL"`
}

//Run starts the order service with supplied command line arguments
func Run(args []string) {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		log.Fatalln(err)
	}
	config := &service.Config{
		Name:    "Order",
		Port:    options.Port,
		URI:     "/orders",
		SeedURL: options.SeedURL,
	}
	srv, err := service.New(config, service.NewStore(), NewAppender())
	if err != nil {
		log.Fatalln(err)
	}
	if err = srv.Start(); err != nil {
		log.Fatalln(err)
	}
}
