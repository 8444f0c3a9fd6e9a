/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: algorithms.go
Description: Lists the algorithm catalogue.
*/

package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kleascm/alfbridge/pkg/engine"
)

// NewAlgorithmsCommand creates the algorithms command
func NewAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the learning algorithms the engine can host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintAlgorithms(os.Stdout)
		},
	}
}

// PrintAlgorithms writes the catalogue as a table
func PrintAlgorithms(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMODE\tMODEL\tDESCRIPTION")
	for _, alg := range engine.Algorithms() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", int(alg), alg, alg.Mode(), alg.ModelKind(), alg.Description())
	}
	return tw.Flush()
}
