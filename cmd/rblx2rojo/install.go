package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rblx2rojo/rblx2rojo/internal/download"
	"github.com/rblx2rojo/rblx2rojo/internal/lune"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download the latest Lune release for this platform",
	Long: `Install fetches the latest Lune release from GitHub, picks the asset for
the current OS and architecture, extracts it into the install directory and
marks it executable.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().String("release-url", lune.LatestReleaseURL, "latest-release endpoint")
	installCmd.Flags().Bool("force", false, "download again even when Lune is already installed")

	rootCmd.AddCommand(installCmd)
}

// newInstaller builds an installer; an empty releaseURL uses the Lune repository
func newInstaller(dir, releaseURL string) *lune.Installer {
	client := httpClient()
	return lune.NewInstaller(dir, lune.NewReleaseClient(releaseURL, client), download.NewService(client))
}

func stderrProgress(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func runInstall(cmd *cobra.Command, args []string) error {
	dir, err := installDir()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	releaseURL, _ := cmd.Flags().GetString("release-url")
	force, _ := cmd.Flags().GetBool("force")
	path, err := ensureInstalled(ctx, newInstaller(dir, releaseURL), force, stderrProgress)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// ensureInstalled keeps an existing managed install unless force is set
func ensureInstalled(ctx context.Context, in *lune.Installer, force bool, progress func(string)) (string, error) {
	if !force && in.IsInstalled() {
		progress(fmt.Sprintf("Lune is already installed at %s (use --force to reinstall)", in.BinaryPath()))
		return in.BinaryPath(), nil
	}
	return in.Install(ctx, progress)
}
