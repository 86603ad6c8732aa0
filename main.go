package main

import (
	"github.com/khushi71103/travelpin/config"
	"github.com/khushi71103/travelpin/internal/app"
)

func main() {

	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err)
	}

	// run the app: starts the server and dispatches requests until the
	// process is stopped.
	err = app.Run()
	if err != nil {
		panic(err)
	}
}
