// main is the entry point for the repograde CLI.
package main

import (
	"github.com/repograde/repograde/cmd"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/internal/resultstore"
)

func main() {
	// Wire the global result store manager into the command layer before
	// any command runs.
	cmd.SetStoreManager(resultstore.Manager)
	defer resultstore.CloseStores()

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		// LogFatal exits, so close stores explicitly before it fires.
		resultstore.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
