package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List declared targets with their last recorded outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := c.app.Targets(c.options(cmd))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, info := range infos {
				status := "never run"
				switch {
				case info.LastRun == nil:
				case info.Stale:
					status = "definition changed"
				case info.LastRun.Success:
					status = "ok"
				default:
					status = fmt.Sprintf("failed (exit %d)", info.LastRun.ExitCode)
				}

				if info.Description != "" {
					_, _ = fmt.Fprintf(w, "%-32s %-20s %s\n", info.Name, status, info.Description)
				} else {
					_, _ = fmt.Fprintf(w, "%-32s %s\n", info.Name, status)
				}
			}
			return nil
		},
	}
}
