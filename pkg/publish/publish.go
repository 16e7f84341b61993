package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/markup/pkg/cache"
	"github.com/vango-dev/markup/pkg/render"
	"github.com/vango-dev/markup/pkg/source"
)

// ErrNoBucket is returned by New when no bucket is configured.
var ErrNoBucket = errors.New("publish: no bucket configured")

// Client is the subset of *s3.Client used by the publisher.
type Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures a Publisher.
type Options struct {
	// Bucket receives the rendered documents.
	Bucket string

	// Prefix is prepended to every object key, e.g. "site/".
	Prefix string

	// CacheControl is sent with every object when set.
	CacheControl string

	// Render configures how documents are rendered.
	Render render.RendererConfig

	// Concurrency bounds parallel uploads (default: 4).
	Concurrency int

	// DryRun renders and reports without uploading.
	DryRun bool

	// Logger receives per-object logs. Nil discards them.
	Logger *slog.Logger
}

// Publisher renders document files and uploads the HTML to S3.
type Publisher struct {
	client   Client
	opts     Options
	renderer *render.Renderer
	logger   *slog.Logger
}

// Result describes one published document.
type Result struct {
	File  string
	Key   string
	ETag  string
	Bytes int
}

// New returns a Publisher writing through client.
func New(client Client, opts Options) (*Publisher, error) {
	if opts.Bucket == "" {
		return nil, ErrNoBucket
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{
		client:   client,
		opts:     opts,
		renderer: render.NewRenderer(opts.Render),
		logger:   logger.With("component", "publish", "bucket", opts.Bucket),
	}, nil
}

// Publish renders and uploads files, whose keys are their paths relative
// to root. Every file is rendered before the first upload starts, so a
// document error publishes nothing. Results are in the order of files.
func (p *Publisher) Publish(ctx context.Context, root string, files []string) ([]Result, error) {
	type job struct {
		file string
		key  string
		body []byte
	}
	jobs := make([]job, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, f := range files {
		key, err := Key(root, f, p.opts.Prefix)
		if err != nil {
			return nil, err
		}
		if other, ok := seen[key]; ok {
			return nil, fmt.Errorf("publish: %s and %s both map to %s", other, f, key)
		}
		seen[key] = f
		body, err := p.render(f)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{file: f, key: key, body: body})
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			r, err := p.put(ctx, j.file, j.key, j.body)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Publisher) render(file string) ([]byte, error) {
	node, err := source.DecodeFile(file)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.renderer.RenderToWriter(&buf, node); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return buf.Bytes(), nil
}

func (p *Publisher) put(ctx context.Context, file, key string, body []byte) (Result, error) {
	r := Result{File: file, Key: key, ETag: cache.ETag(body), Bytes: len(body)}
	if p.opts.DryRun {
		p.logger.Info("dry run", "key", key, "bytes", r.Bytes)
		return r, nil
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(p.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"source":       filepath.ToSlash(filepath.Base(file)),
			"content-hash": strings.Trim(r.ETag, `"`),
			"publish-time": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if p.opts.CacheControl != "" {
		in.CacheControl = aws.String(p.opts.CacheControl)
	}

	start := time.Now()
	if _, err := p.client.PutObject(ctx, in); err != nil {
		return Result{}, fmt.Errorf("publish %s: %w", key, err)
	}
	p.logger.Info("uploaded", "key", key, "bytes", r.Bytes, "duration", time.Since(start))
	return r, nil
}

// Key returns the object key for a document file: its path relative to
// root with the source extension replaced by ".html", under prefix.
func Key(root, file, prefix string) (string, error) {
	if !source.IsDocument(file) {
		return "", fmt.Errorf("publish: %s: %w", file, source.ErrUnsupportedFormat)
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", fmt.Errorf("publish: %w", err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("publish: %s is outside %s", file, root)
	}
	rel = strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
	return path.Join(prefix, rel), nil
}

// Collect returns the document files under root in lexical order.
func Collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if source.IsDocument(p) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}
