package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rblx2rojo/rblx2rojo/internal/convert"
	"github.com/rblx2rojo/rblx2rojo/internal/lune"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report the host target, the Lune runtime and the conversion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := installDir()
		if err != nil {
			return err
		}
		ok := runDoctor(cmd.Context(), cmd.OutOrStdout(),
			lune.NewLocator(viper.GetString(keyLune), dir),
			convert.NewScriptLocator(viper.GetString(keyScript)))
		if !ok {
			return fmt.Errorf("rblx2rojo is not ready to convert")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor prints one line per check and reports whether all passed
func runDoctor(ctx context.Context, w io.Writer, locator *lune.Locator, scripts *convert.ScriptLocator) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	ok := true

	target, err := lune.HostTarget()
	if err != nil {
		fmt.Fprintf(w, "✗ platform: %v\n", err)
		ok = false
	} else {
		fmt.Fprintf(w, "✓ platform: %s\n", target)
	}

	path, err := locator.Find()
	if err != nil {
		fmt.Fprintf(w, "✗ lune: %v\n", err)
		ok = false
	} else if v, err := locator.ProbeVersion(ctx, path); err != nil {
		fmt.Fprintf(w, "✗ lune: %s (%v)\n", path, err)
		ok = false
	} else {
		fmt.Fprintf(w, "✓ lune: %s (v%s)\n", path, v)
	}

	script, err := scripts.Find()
	if err != nil {
		fmt.Fprintf(w, "✗ script: %v (searched %v)\n", err, scripts.Candidates())
		ok = false
	} else {
		fmt.Fprintf(w, "✓ script: %s\n", script)
	}

	return ok
}
