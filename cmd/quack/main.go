package main

import (
	"fmt"
	"os"

	"github.com/quackswap/quack/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
