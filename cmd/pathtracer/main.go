// pathtracer renders built-in or file-based scenes to PPM or PNG images.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmdRoot := &cobra.Command{
		Use:           "pathtracer",
		Short:         "Offline Monte Carlo path tracer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Expose glog's -v, -logtostderr and friends alongside the cobra flags
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmdRoot.AddCommand(newRenderCommand(), newScenesCommand(), newExportSceneCommand())
	return cmdRoot
}

func main() {
	glog.CopyStandardLogTo("INFO")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
