package main

import (
	"os"

	"github.com/silsila-idreesia/portal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
