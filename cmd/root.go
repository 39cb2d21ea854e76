package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "lock-check",
	Short: "Pre-commit guard against multi-table lock migrations",
	Long: `
  _     ___   ____ _  __     ____ _   _ _____ ____ _  __
 | |   / _ \ / ___| |/ /    / ___| | | | ____/ ___| |/ /
 | |  | | | | |   | ' /    | |   | |_| |  _|| |   | ' /
 | |__| |_| | |___| . \    | |___|  _  | |__| |___| . \
 |_____\___/ \____|_|\_\    \____|_| |_|_____\____|_|\_\

LOCK CHECK 🔒 - Django Migration Lock Guard

Blocks a commit when a single migration would take exclusive locks on
two or more large tables.
`,
}

func Execute() {
	// 130 is the conventional exit code for SIGINT.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		fmt.Println("\nInterrupted")
		os.Exit(130)
	}()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "JSON configuration file (default is ./lock-check.json)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("json")
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("lock-check")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// A missing config file is fine; an unreadable one is only a warning
	// and the check proceeds on flags and defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Printf("⚠️  Error loading configuration %s: %v\n", cfgFile, err)
	}
}
