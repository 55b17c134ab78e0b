// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "silsila-portal",
	Short: "silsila-portal is the administrative portal of Silsila Idreesia",
	Long: `silsila-portal serves the Silsila Idreesia administrative REST API
and the public bilingual website, covering zones, mehfil directories,
karkun records, ehads, tabarukats, mehfil reports and taleemat.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
