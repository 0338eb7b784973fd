package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/vardbx/internal/clipboard"
	"github.com/gubarz/vardbx/internal/config"
	"github.com/gubarz/vardbx/internal/ebuild"
	"github.com/gubarz/vardbx/internal/ui"
	"github.com/gubarz/vardbx/internal/vardb"
)

var version = "0.1.0"

var clip clipboard.Clipboard = &clipboard.System{}

var rootCmd = &cobra.Command{
	Use:   "vardbx",
	Short: "Inspect the installed-package database and ebuilds",
	Long: `vardbx reads Gentoo package metadata from two sources:
the vardb tree of installed packages (/var/db/pkg) and individual
ebuild files. Results are printed as JSON or browsed interactively.`,
}

var ebuildCmd = &cobra.Command{
	Use:   "ebuild <file>",
	Short: "Extract variable assignments from an ebuild file",
	Long: `Scans an ebuild and prints its variable assignments as JSON.

The scanner collects top-level assignments (scalars, quoted strings
and arrays), skips shell functions, and resolves ${VAR} references
between the collected variables. It never fails on malformed input;
only reading the file can error.`,
	Args: cobra.ExactArgs(1),
	RunE: runEbuild,
}

var listCmd = &cobra.Command{
	Use:   "list [root]",
	Short: "List installed packages as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var browseCmd = &cobra.Command{
	Use:   "browse [root]",
	Short: "Browse installed packages interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(ebuildCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)

	rootCmd.PersistentFlags().StringP("path", "p", "", "Vardb root (default /var/db/pkg)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: json, copy")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	ebuildCmd.Flags().Int("passes", 0, "Reference-resolution passes (default 2)")
	browseCmd.Flags().StringP("query", "q", "", "Initial filter query")

	viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func setupLogging(cmd *cobra.Command) {
	log.SetLevel(log.WarnLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}
}

func runEbuild(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)

	if p, _ := cmd.Flags().GetInt("passes"); p > 0 {
		config.SetResolvePasses(p)
	}
	passes := config.GetResolvePasses()

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading ebuild: %w", err)
	}

	start := time.Now()
	data := ebuild.ParseOpts(string(content), passes)
	log.Debug("scanned ebuild", "file", args[0], "variables", data.Len(), "elapsed", time.Since(start))

	return emit(data.Vars())
}

func runList(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)

	packages, err := walkVardb(args)
	if err != nil {
		return err
	}
	return emit(packages)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)

	packages, err := walkVardb(args)
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		return fmt.Errorf("no packages found")
	}

	query, _ := cmd.Flags().GetString("query")
	return ui.Run(packages, query)
}

// walkVardb resolves the root from the argument or config and reads it
func walkVardb(args []string) ([]vardb.Package, error) {
	if len(args) > 0 {
		config.SetPath(args[0])
	}
	root := config.GetPath()

	start := time.Now()
	packages, err := vardb.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("scanning vardb: %w", err)
	}
	log.Debug("scanned vardb", "root", root, "packages", len(packages), "elapsed", time.Since(start))
	return packages, nil
}

// emit renders v as pretty JSON and routes it per the output mode
func emit(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	switch config.GetOutput() {
	case "copy":
		return clip.Copy(string(out))
	default: // json
		fmt.Println(string(out))
		return nil
	}
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
