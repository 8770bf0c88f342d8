package controllers

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewPinController); err != nil {
		return err
	}
	if err := container.Provide(NewEnginesController); err != nil {
		return err
	}

	return nil
}
