// Command adminctl manages product media for the storefront bot's admin API.
package main

import (
	"os"

	"github.com/tgstore/adminctl/cmd/adminctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
