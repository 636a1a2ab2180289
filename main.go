package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/tritondatacenter/entrypoint-tool/commands"
	"github.com/tritondatacenter/entrypoint-tool/core"
)

// Main executes the entrypoint-tool CLI. This is the only place that
// decides exit codes: library code reports errors and the taxonomy is
// flattened here. Anything other than success or a child's own exit
// status becomes exit code 1.
func main() {
	app, err := core.NewApp(os.Args[1:])
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		if exitErr, ok := err.(*commands.ExitStatusError); ok {
			// the child ran and failed on its own terms; pass its
			// status through untranslated
			log.Debug(err)
			os.Exit(exitErr.Status)
		}
		log.Error(err)
		os.Exit(1)
	}
}
