package main

import (
	"go.uber.org/dig"

	"github.com/smarlhens/riri-node-tools/internal"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/controllers"
)

func injectEnginesController() *controllers.EnginesController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var enginesController *controllers.EnginesController
	if err := container.Invoke(func(ec *controllers.EnginesController) {
		enginesController = ec
	}); err != nil {
		panic(err)
	}

	return enginesController
}
