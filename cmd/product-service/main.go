package main

import (
	"os"

	"github.com/shopmesh/shopmesh/service/product"
)

func main() {
	product.Run(os.Args[1:])
}
