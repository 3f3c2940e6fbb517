package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path FROM TO",
		Short: "Print the quickest route between two stations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := a.loadService(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			route, ok := svc.ShortestPath(cmd.Context(), args[0], args[1])
			if !ok {
				return fmt.Errorf("no route from %q to %q", args[0], args[1])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(route.Names(), " -> "))
			for _, hop := range route.View().Hops {
				fmt.Fprintf(out, "  %s -> %s  %s, %d min\n", hop.From, hop.To, hop.Line, hop.TimeMinutes)
			}
			fmt.Fprintf(out, "Total: %d min\n", route.TotalTime)
			return nil
		},
	}
}

func newNeighboursCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbours STATION",
		Short: "Print the stations directly linked to a station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := a.loadService(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			neighbours, ok := svc.Neighbours(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("unknown station %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d neighbours\n", args[0], len(neighbours))
			for _, n := range neighbours {
				parts := make([]string, 0, len(n.Connections))
				for _, c := range n.Connections {
					line := "?"
					if c.Line != nil {
						line = c.Line.Name
					}
					parts = append(parts, fmt.Sprintf("%s %d min", line, c.Time))
				}
				fmt.Fprintf(out, "  %s (%s): %s\n", n.Station.Name, n.Station.ID, strings.Join(parts, ", "))
			}
			return nil
		},
	}
}
