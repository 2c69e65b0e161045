package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Version string
	Commit  string
	BuiltAt string
)

func init() {
	rootCmd.AddCommand(NewVersionCmd("volumeprobe"))
}

// NewVersionCmd returns a version command for the named binary.
func NewVersionCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + name,
		Long:  "All software has versions. This is " + name + "'s",
		Run: func(cmd *cobra.Command, args []string) {
			log.Infof("%s, version %s (commit %s), built at %s", name, Version, Commit, BuiltAt)
		},
	}
}
