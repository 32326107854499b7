package main

import (
	"github.com/cargoplan/cargoplan/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
