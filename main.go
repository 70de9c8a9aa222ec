package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/iqbalbaharum/serum-swap-client/internal/cli"
)

func main() {
	cli.Execute()
}
