package proxy

import (
	"context"
	"log"

	"github.com/jessevdk/go-flags"
	"github.com/shopmesh/shopmesh/gateway"
)

//Options represents gateway command line options
type Options struct {
	ConfigURL string `short:"c" long:"config" description:"config URL"`
	Port      int    `short:"p" long:"port" description:"listen port"`
}

//Run starts the gateway with supplied command line arguments
func Run(args []string) {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		log.Fatalln(err)
	}
	config := &gateway.Config{}
	if options.ConfigURL != "" {
		if config, err = gateway.NewConfigWithURL(context.Background(), options.ConfigURL); err != nil {
			log.Fatalln(err)
		}
	}
	if options.Port != 0 {
		config.Port = options.Port
	}
	srv, err := New(config)
	if err != nil {
		log.Fatalln(err)
	}
	if err = srv.Start(); err != nil {
		log.Fatalln(err)
	}
}
