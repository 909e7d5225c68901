package main

import (
	"github.com/maroof-insights/storefront-dashboard/internal/cmd"
)

func main() {
	cmd.Execute()
}
