// Package cmd implements the command-line interface for jevah.
package cmd

import (
	"github.com/jevah-cli/jevah/provider/custom"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("lenient", "l", false, "Suppress warnings regarding missing Lua metadata functions")
}

// runCmd facilitates the execution of local Lua source files for development and debugging.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a local Lua source file",
	Long: `Initialize the Lua 5.1 virtual machine to execute a specified script. Useful for lookup source development and debugging.
Optionally utilizes the internal environment as a standalone Lua interpreter.`,
	Args:    cobra.ExactArgs(1),
	Example: "  jevah run ./test.lua",
	Run: func(cmd *cobra.Command, args []string) {
		sourcePath := args[0]

		// Invoke the Lua interpreter to load and execute the target script.
		_, err := custom.LoadSource(sourcePath)
		handleErr(err)
	},
}
