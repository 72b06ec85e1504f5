package commands

import "fmt"

// SetVersion records build version information on the root command.
func SetVersion(version, commit string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("nugetcompat %s (%s)\n", version, commit))
}
