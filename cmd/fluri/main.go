package main

import (
	"os"

	"github.com/spf13/cobra"
)

type cmdGlobal struct {
	flagEncode bool
}

func main() {
	// Run the main command and handle errors
	err := newApp().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newApp() *cobra.Command {
	app := (&cmdMain{}).Command()
	app.SilenceUsage = true

	// Global flags
	globalCmd := cmdGlobal{}
	app.PersistentFlags().BoolVarP(&globalCmd.flagEncode, "encode", "e", false, "Percent-encode the URL components")

	// Sub-commands
	parseCmd := cmdParse{global: &globalCmd}
	app.AddCommand(parseCmd.Command())

	buildCmd := cmdBuild{global: &globalCmd}
	app.AddCommand(buildCmd.Command())

	renderCmd := cmdRender{global: &globalCmd}
	app.AddCommand(renderCmd.Command())

	return app
}
