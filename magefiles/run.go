//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the flagpole scene with the default configuration.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/flagpole.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the flagpole scene with debug logging.
func (Run) Debug() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/flagpole.toml", "-log-level", "debug"), withStream()); err != nil {
		return err
	}
	return nil
}
