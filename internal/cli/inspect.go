// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"topictree/internal/models"
	"topictree/internal/outline"
	"topictree/internal/storage"
	"topictree/internal/taxonomy"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		fromS3 bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "inspect <file|key>",
		Short: "Summarize a topic tree document and print its outline",
		Long: "Loads a document from a file (or '-' for stdin), validates it and prints\n" +
			"node count, depth and the outline. With --s3 the argument is an export key.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tree *models.TopicTree
				err  error
			)
			if fromS3 {
				tree, err = a.fetchExport(cmd.Context(), args[0])
			} else {
				tree, err = readDocument(args[0], cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			return printInspection(cmd.OutOrStdout(), tree, format)
		},
	}
	cmd.Flags().BoolVar(&fromS3, "s3", false, "Read the document from the S3 export bucket")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Outline format: markdown, html or none")

	return cmd
}

func readDocument(path string, stdin io.Reader) (*models.TopicTree, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return models.ParseTopicTree(data)
}

func (a *app) fetchExport(ctx context.Context, key string) (*models.TopicTree, error) {
	cfg := a.cfg
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Prefix)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("S3 export is not configured")
	}
	return client.FetchTree(ctx, key)
}

func printInspection(w io.Writer, tree *models.TopicTree, format string) error {
	md := tree.Metadata
	fmt.Fprintf(w, "Title:       %s\n", md.Title)
	fmt.Fprintf(w, "Created:     %s\n", md.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Mode:        %s\n", orDash(md.Settings.Mode))
	fmt.Fprintf(w, "Model:       %s\n", orDash(md.Settings.Model))
	fmt.Fprintf(w, "Discipline:  %s\n", orDash(taxonomy.Disciplines.NameOf(md.Discipline)))
	fmt.Fprintf(w, "Context:     %s\n", orDash(taxonomy.EducationalContexts.NameOf(md.EducationalContext)))
	fmt.Fprintf(w, "Main topics: %d\n", len(tree.Collection))
	fmt.Fprintf(w, "Nodes:       %d\n", tree.CountNodes())
	fmt.Fprintf(w, "Depth:       %d\n", tree.Depth())

	switch format {
	case "none":
		return nil
	case "markdown":
		fmt.Fprintf(w, "\n%s", outline.Markdown(tree))
	case "html":
		html, err := outline.HTML(tree)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s", html)
	default:
		return fmt.Errorf("unknown format %q (want markdown, html or none)", format)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
