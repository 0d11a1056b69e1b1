// Package main is the entrypoint of the launchpad CLI.
package main

import (
	"github.com/huangsam/launchpad/cmd"
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/history"
)

func main() {
	err := cmd.Execute()
	history.CloseHistory()
	if err != nil {
		contract.LogFatal("launchpad", err)
	}
}
