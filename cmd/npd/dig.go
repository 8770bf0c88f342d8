package main

import (
	"go.uber.org/dig"

	"github.com/smarlhens/riri-node-tools/internal"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/controllers"
)

func injectPinController() *controllers.PinController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var pinController *controllers.PinController
	if err := container.Invoke(func(pc *controllers.PinController) {
		pinController = pc
	}); err != nil {
		panic(err)
	}

	return pinController
}
