package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rblx2rojo/rblx2rojo/internal/convert"
	"github.com/rblx2rojo/rblx2rojo/internal/lune"
	"github.com/rblx2rojo/rblx2rojo/internal/model"
	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert a place or model file into a Rojo project",
	Long: `Convert runs the conversion script on a .rbxl, .rbxm, .rbxlx or .rbxmx
file. The output directory defaults to <name>_rojo next to the input. Script
output is echoed line by line; the exit code of the script decides success.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringSlice(keyServices, nil, "services to include (comma-separated, default: all)")
	convertCmd.Flags().Bool("install", false, "download Lune first when it is not found")
	_ = viper.BindPFlag(keyServices, convertCmd.Flags().Lookup(keyServices))

	rootCmd.AddCommand(convertCmd)
}

// parseServices accepts names from flags, config lists and comma-separated
// env values. No names means every service.
func parseServices(values []string) (model.ServiceSelection, error) {
	var names []string
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return model.NewServiceSelection(true), nil
	}
	return model.SelectionFromNames(names)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := platform.DefaultOutputDir(input)
	if len(args) > 1 {
		output = args[1]
	}

	services, err := parseServices(viper.GetStringSlice(keyServices))
	if err != nil {
		return err
	}

	dir, err := installDir()
	if err != nil {
		return errors.Annotate(err, "resolving install directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	locator := lune.NewLocator(viper.GetString(keyLune), dir)
	if install, _ := cmd.Flags().GetBool("install"); install {
		if _, err := locator.Find(); errors.Is(err, errors.NotFound) {
			if _, err := newInstaller(dir, "").Install(ctx, stderrProgress); err != nil {
				return err
			}
		}
	}

	svc := convert.NewService(locator, convert.NewScriptLocator(viper.GetString(keyScript)))
	svc.SetLogCallback(func(taskID, line string) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	})

	task, err := svc.Convert(ctx, convert.Request{
		InputPath: input,
		OutputDir: output,
		Services:  services,
	})
	if err != nil {
		return err
	}

	if task.Summary != nil {
		fmt.Fprintf(os.Stderr, "✓ %s\n", task.Summary)
	}
	fmt.Fprintf(os.Stderr, "Conversion completed in %s: %s\n", task.GetDurationString(), task.OutputDir)
	return nil
}
