//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests of every package.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests that do not need a window or a GL context.
func (Test) Headless() error {
	_, err := executeCmd("go", withArgs("test",
		"./engine/math/...",
		"./engine/core/...",
		"./engine/config/...",
		"./engine/assets/...",
		"./engine/systems/...",
		"./engine/renderer",
		"./engine/renderer/components/...",
		"./scene/...",
	), withStream())
	return err
}
