// main is the entry point for the guidepost CLI.
package main

import (
	"github.com/guidepost-dev/guidepost/cmd"
	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/internal/store"
)

func main() {
	err := cmd.Execute()

	// Stores are initialized lazily by command setup; close whatever opened.
	store.CloseStores()

	if err != nil {
		contract.LogFatal("guidepost failed", err)
	}
}
