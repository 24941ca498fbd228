package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"roadwatch/internal/version"
	"roadwatch/pkg/log"
)

var (
	logLevel   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "roadwatch",
	Short: "roadwatch scores traffic-camera images for congestion",
	Long: `Counts vehicles inside per-direction regions of interest of traffic-camera
images and classifies each segment as congested or not.
Version: ` + version.VERSION + `/` + version.COMMIT,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.InitLog(logLevel)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "etc/config.yaml", "Path to config file")

	rootCmd.AddCommand(countCommand)
	rootCmd.AddCommand(nearestCommand)
}
