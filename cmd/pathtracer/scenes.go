package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func newScenesCommand() *cobra.Command {
	var sceneDir string
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := scene.ListAllScenes(sceneDir, func(path string, err error) {
				glog.Warningf("Skipping %s: %v", path, err)
			})
			if err != nil {
				return fmt.Errorf("while listing scenes: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, group := range response.Groups {
				fmt.Fprintf(w, "%s\n", group.Name)
				for _, info := range group.Scenes {
					fmt.Fprintf(w, "  %s\t%s\n", info.ID, info.Description)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&sceneDir, "scene-dir", "scenes", "Directory searched for .yaml and .scene files")
	return cmd
}

func newExportSceneCommand() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "export-scene NAME [PATH]",
		Short: "Write a built-in scene as YAML to PATH, or to stdout",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := scene.Describe(args[0], seed)
			if err != nil {
				return err
			}
			if len(args) == 1 || args[1] == "-" {
				return d.Encode(cmd.OutOrStdout())
			}
			if err := d.Save(args[1]); err != nil {
				return fmt.Errorf("while exporting %q: %w", args[0], err)
			}
			glog.Infof("Exported scene %q to %s", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "Seed for randomized scenes")
	return cmd
}

