package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/publish"
)

type publishFlags struct {
	bucket       string
	prefix       string
	region       string
	endpoint     string
	cacheControl string
	concurrency  int
	dryRun       bool
}

func publishCmd(g *globals) *cobra.Command {
	var flags publishFlags

	cmd := &cobra.Command{
		Use:   "publish [files...]",
		Short: "Render documents and upload them to S3",
		Long: `Render documents and upload the HTML to an S3 bucket. Object keys are
the document paths relative to the source directory with an .html
extension. Every document is rendered before the first upload, so an
invalid document publishes nothing.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN.

Examples:
  markup publish --bucket www.example.com
  markup publish pages/index.yaml --prefix v2 --dry-run
  markup publish --endpoint http://localhost:9000 --bucket site`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			flags.apply(cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runPublish(cmd, g, cfg, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.bucket, "bucket", "b", "", "Bucket name (default from config)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&flags.region, "region", "", "AWS region (default from config or AWS_REGION)")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().StringVar(&flags.cacheControl, "cache-control", "", "Cache-Control for every object")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "j", 4, "Parallel uploads")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Render and list keys without uploading")
	return cmd
}

func (f *publishFlags) apply(cfg *config.Config) {
	if f.bucket != "" {
		cfg.Publish.Bucket = f.bucket
	}
	if f.prefix != "" {
		cfg.Publish.Prefix = f.prefix
	}
	if f.region != "" {
		cfg.Publish.Region = f.region
	}
	if f.endpoint != "" {
		cfg.Publish.Endpoint = f.endpoint
	}
	if f.cacheControl != "" {
		cfg.Publish.CacheControl = f.cacheControl
	}
}

func runPublish(cmd *cobra.Command, g *globals, cfg *config.Config, args []string, flags publishFlags) error {
	w := cmd.OutOrStdout()
	if cfg.Publish.Bucket == "" {
		return errors.New("M602")
	}

	root, err := filepath.Abs(cfg.SourcePath())
	if err != nil {
		return err
	}
	files := make([]string, len(args))
	for i, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return err
		}
		files[i] = abs
	}
	if len(files) == 0 {
		if files, err = publish.Collect(root); err != nil {
			return err
		}
	}

	client := publish.NewClient(publish.ClientOptions{
		Region:   cfg.Publish.Region,
		Endpoint: cfg.Publish.Endpoint,
	})
	p, err := publish.New(client, publish.Options{
		Bucket:       cfg.Publish.Bucket,
		Prefix:       cfg.Publish.Prefix,
		CacheControl: cfg.Publish.CacheControl,
		Render:       rendererConfig(cfg),
		Concurrency:  flags.concurrency,
		DryRun:       flags.dryRun,
		Logger:       g.logger,
	})
	if err != nil {
		return errors.New("M602").Wrap(err)
	}

	results, err := p.Publish(cmd.Context(), root, files)
	if err != nil {
		if errors.Classify(err).Code != "M901" {
			return err
		}
		return errors.New("M601").Wrap(err).WithDetail(err.Error())
	}

	total := 0
	for _, r := range results {
		total += r.Bytes
		info(w, "%s %s", r.Key, styleDim.Render(formatBytes(r.Bytes)))
	}
	if flags.dryRun {
		warn(w, "Dry run: %d documents rendered, nothing uploaded", len(results))
		return nil
	}
	success(w, "Published %d documents (%s) to s3://%s", len(results), formatBytes(total), cfg.Publish.Bucket)
	return nil
}
