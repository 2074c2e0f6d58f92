package main

import (
	"os"

	"github.com/shopmesh/shopmesh/service/user"
)

func main() {
	user.Run(os.Args[1:])
}
