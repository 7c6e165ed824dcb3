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
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"topictree/internal/ai"
	"topictree/internal/generator"
	"topictree/internal/models"
	"topictree/internal/retry"
	"topictree/internal/slug"
	"topictree/internal/storage"
	"topictree/internal/taxonomy"
)

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	req      generator.Request
	mode     string
	provider string
	output   string
	dir      string
	export   bool
	quiet    bool
}

func newGenerateCmd(a *app) *cobra.Command {
	o := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build one topic tree and write the JSON document",
		Long: "Builds a topic tree for --topic and writes it to themenbaum_<slug>_<timestamp>.json\n" +
			"in --dir, to --output, or to stdout with --output -. Progress goes to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), o, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.req.Topic, "topic", "t", "", "Subject of the tree (required)")
	f.IntVar(&o.req.NumMain, "main", 10, "Number of main topics")
	f.IntVar(&o.req.NumSub, "sub", 3, "Number of subtopics per main topic")
	f.IntVar(&o.req.NumLeaf, "leaf", 3, "Number of curriculum topics per subtopic")
	f.BoolVar(&o.req.IncludeGeneral, "general", false, "Add the General main topic first")
	f.BoolVar(&o.req.IncludeMethodology, "methodology", false, "Add the Methodology and Didactics main topic last")
	f.StringVar(&o.req.Discipline, "discipline", taxonomy.DefaultDiscipline, "Discipline name (see 'topictree taxonomy')")
	f.StringVar(&o.req.EducationalContext, "context", taxonomy.DefaultEducationalContext, "Educational context name")
	f.StringVar(&o.req.EducationSector, "sector", taxonomy.DefaultEducationSector, "Education sector name")
	f.StringVarP(&o.req.Model, "model", "m", "", "Model name (default: the provider's configured model)")
	f.StringVar(&o.mode, "mode", "", "Generation mode: single or iterative (default: GEN_MODE)")
	f.StringVarP(&o.provider, "provider", "p", "", "AI provider (default: AI_PROVIDER)")
	f.StringVarP(&o.output, "output", "o", "", "Output file, or - for stdout")
	f.StringVar(&o.dir, "dir", ".", "Directory for the generated file name")
	f.BoolVar(&o.export, "export", false, "Also upload the document to the S3 export bucket")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "Suppress progress output")
	cmd.MarkFlagRequired("topic")

	return cmd
}

func (a *app) generate(ctx context.Context, o *generateOptions, stdout, stderr io.Writer) error {
	cfg := a.cfg

	req := o.req
	mode := o.mode
	if mode == "" {
		mode = cfg.GenMode
	}
	m, err := generator.ParseMode(mode)
	if err != nil {
		return err
	}
	req.Mode = m
	if err := req.Validate(); err != nil {
		return err
	}

	// Fail before spending model calls when the export cannot happen.
	var exporter *storage.Client
	if o.export {
		exporter, err = storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return err
		}
		if exporter == nil {
			return errors.New("--export needs S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
		}
	}

	client, err := newClient(cfg, o.provider)
	if err != nil {
		return err
	}
	gen := generator.New(client,
		generator.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.GenMaxAttempts,
			BaseDelay:   cfg.GenBaseDelay,
			MaxDelay:    cfg.GenMaxDelay,
			Retryable:   ai.IsTransient,
		}),
		generator.WithTemperature(cfg.GenTemperature),
		generator.WithMaxTokens(cfg.GenMaxTokens),
	)

	var progress generator.ProgressFunc
	if !o.quiet {
		progress = func(fraction float64, message string) {
			fmt.Fprintf(stderr, "[%3.0f%%] %s\n", fraction*100, message)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.GenBuildTimeout)
	defer cancel()

	tree, err := gen.Generate(ctx, req, progress)
	if err != nil {
		return err
	}

	data, err := tree.Marshal()
	if err != nil {
		return err
	}

	at := time.Now()
	dest, err := writeDocument(o, tree, data, at, stdout)
	if err != nil {
		return err
	}
	if dest != "" {
		fmt.Fprintf(stderr, "wrote %s (%d nodes)\n", dest, tree.CountNodes())
	}

	if exporter != nil {
		key, err := exporter.ExportTree(ctx, tree, at)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "exported s3://%s/%s\n", exporter.Bucket(), key)
	}
	return nil
}

// writeDocument writes data to the chosen destination and returns the file
// path, or "" for stdout.
func writeDocument(o *generateOptions, tree *models.TopicTree, data []byte, at time.Time, stdout io.Writer) (string, error) {
	if o.output == "-" {
		_, err := stdout.Write(data)
		return "", err
	}

	path := o.output
	if path == "" {
		path = filepath.Join(o.dir, slug.Filename(tree.Metadata.Title, at))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
