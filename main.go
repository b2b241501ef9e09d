// Package main is the entry point for the jevah application.
package main

import (
	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/cmd"
	"github.com/jevah-cli/jevah/config"
	"github.com/jevah-cli/jevah/internal/cache"
	"github.com/jevah-cli/jevah/internal/sync"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background processes for cache maintenance and synchronization.
	go cache.CollectGarbage()
	if viper.GetBool(key.SyncRetryFailed) {
		// Spawns its own goroutine.
		sync.ReconcileFailures(api.New())
	}

	cmd.Execute()
}
