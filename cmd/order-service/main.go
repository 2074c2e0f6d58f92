package main

import (
	"os"

	"github.com/shopmesh/shopmesh/service/order"
)

func main() {
	order.Run(os.Args[1:])
}
