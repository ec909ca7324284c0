// Package main is the headless command line for the converter. It runs the
// same conversion and runtime installation as the desktop app.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

// version is set at build time via ldflags.
var version = "dev"

// Config keys shared by flags, the config file and RBLX2ROJO_* variables
const (
	keyLune       = "lune"
	keyScript     = "script"
	keyServices   = "services"
	keyInstallDir = "install-dir"
)

// rootCmd is the base command for the rblx2rojo CLI.
var rootCmd = &cobra.Command{
	Use:   "rblx2rojo",
	Short: "Convert Roblox place and model files into Rojo projects",
	Long: `rblx2rojo converts .rbxl, .rbxm, .rbxlx and .rbxmx files into a Rojo
project directory by running the conversion script with the Lune runtime.
It can also download Lune for the current platform.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rblx2rojo.yaml or ~/.config/rblx2rojo/rblx2rojo.yaml)")
	rootCmd.PersistentFlags().String(keyLune, "", "path to the lune binary (default: managed install, then PATH)")
	rootCmd.PersistentFlags().String(keyScript, "", "path to the conversion script (default: converters/convert.luau)")
	rootCmd.PersistentFlags().String(keyInstallDir, "", "directory holding the managed lune install")

	for _, key := range []string{keyLune, keyScript, keyInstallDir} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rblx2rojo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if appDir, err := platform.GetAppDataDir(); err == nil {
			viper.AddConfigPath(appDir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", platform.AppDirName))
		}
	}

	viper.SetEnvPrefix("RBLX2ROJO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// installDir returns the configured install dir or the per-user default
func installDir() (string, error) {
	if dir := viper.GetString(keyInstallDir); dir != "" {
		return dir, nil
	}
	return platform.GetRuntimeInstallDir()
}

// httpClient has no timeout; an install runs until done or interrupted
func httpClient() *http.Client {
	return &http.Client{}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
