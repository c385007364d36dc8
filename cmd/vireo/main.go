package main

import (
	"fmt"
	"os"
	"runtime"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vireodata/vireo/pkg/config"
	"github.com/vireodata/vireo/pkg/datatype"
	"github.com/vireodata/vireo/pkg/logger"
	vstrings "github.com/vireodata/vireo/pkg/strings"
)

var version = "0.1.0"

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:   "vireo",
		Short: "Vireo - columnar storage engine tooling",
		Long: `Vireo is a columnar analytic storage engine. This tool inspects how
logical columns map onto physical substreams on disk.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{
				Level:    logLevel,
				Encoding: "console",
			})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Vireo v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	streamNameCmd := &cobra.Command{
		Use:   "stream-name <column> [path]",
		Short: "Resolve the on-disk stream name for a column substream",
		Long: `Resolves the canonical stream identifier for one substream of a column.
The optional path is a comma-separated marker list: null, sizes, elements,
tuple:<field>, dict.

Examples:
  vireo stream-name hits
  vireo stream-name hits "sizes"
  vireo stream-name visits.goals "sizes"
  vireo stream-name point "tuple:x,null"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnName := args[0]
			spec := ""
			if len(args) == 2 {
				spec = args[1]
			}

			path, err := datatype.ParsePath(spec)
			if err != nil {
				return err
			}

			name := datatype.StreamName(columnName, path)
			logger.Debug("resolved stream name",
				zap.String("column", columnName),
				zap.String("stream", name))
			fmt.Println(name)
			return nil
		},
	}
	root.AddCommand(streamNameCmd)

	root.AddCommand(&cobra.Command{
		Use:   "escape <name>",
		Short: "Escape a column name for storage-file use",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(vstrings.EscapeForFileName(args[0]))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "unescape <name>",
		Short: "Reverse storage-file name escaping",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(vstrings.UnescapeForFileName(args[0]))
		},
	})

	var settingsPath string
	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "Print the effective text format settings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultFormatSettings()
			if settingsPath != "" {
				loaded, err := config.LoadFormatSettings(settingsPath)
				if err != nil {
					return err
				}
				settings = loaded
			}

			out, err := gojson.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	formatsCmd.Flags().StringVar(&settingsPath, "settings", "", "path to a format settings file")
	root.AddCommand(formatsCmd)

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
