package user

import (
	"log"

	"github.com/jessevdk/go-flags"
	"github.com/shopmesh/shopmesh/service"
)

//Options represents user service command line options
type Options struct {
	Port    int    `short:"p" long:"port" description:"listen port" default:"3000"`
	SeedURL string `short:"s" long:"seed" description:"seed payload URL"`
}

//Run starts the user service with supplied command line arguments
func Run(args []string) {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		log.Fatalln(err)
	}
	store, err := NewStore()
	if err != nil {
		log.Fatalln(err)
	}
	config := &service.Config{
		Name:    "User",
		Port:    options.Port,
		URI:     "/users",
		SeedURL: options.SeedURL,
	}
	srv, err := service.New(config, store, nil)
	if err != nil {
		log.Fatalln(err)
	}
	if err = srv.Start(); err != nil {
		log.Fatalln(err)
	}
}
