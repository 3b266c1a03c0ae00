package main

import (
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/cli"
)

func main() {
	cli.Execute()
}
