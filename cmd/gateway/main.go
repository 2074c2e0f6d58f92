package main

import (
	"os"

	"github.com/shopmesh/shopmesh/gateway/proxy"
)

func main() {
	proxy.Run(os.Args[1:])
}
