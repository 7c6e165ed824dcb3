// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"topictree/internal/taxonomy"
)

func newTaxonomyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "List the selectable disciplines, educational contexts and sectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTaxonomy(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")

	return cmd
}

var taxonomyTables = []struct {
	key   string
	label string
	table *taxonomy.Table
}{
	{"disciplines", "Disciplines", taxonomy.Disciplines},
	{"educational_contexts", "Educational contexts", taxonomy.EducationalContexts},
	{"education_sectors", "Education sectors", taxonomy.EducationSectors},
}

func printTaxonomy(w io.Writer, asJSON bool) error {
	if asJSON {
		out := make(map[string][]taxonomy.Entry, len(taxonomyTables))
		for _, t := range taxonomyTables {
			out[t.key] = t.table.Entries()
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(b))
		return nil
	}

	for i, t := range taxonomyTables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", t.label)
		for _, e := range t.table.Entries() {
			if e.ID == "" {
				fmt.Fprintf(w, "  %s\n", e.Name)
				continue
			}
			fmt.Fprintf(w, "  %-40s %s\n", e.Name, e.ID)
		}
	}
	return nil
}
