package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by S3Pages.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Pages serves pages from an S3 bucket. The object key for a page is
// the configured prefix followed by the identifier.
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	pages := server.NewS3Pages(s3.NewFromConfig(cfg), "my-bucket", "pages/", true)
type S3Pages struct {
	client S3API
	bucket string
	prefix string
	cache  bool

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewS3Pages creates a page source over the given bucket. When cache is
// true, fetched templates are reused across requests.
func NewS3Pages(client S3API, bucket, prefix string, cache bool) *S3Pages {
	return &S3Pages{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		cache:     cache,
		templates: make(map[string]*template.Template),
	}
}

func (p *S3Pages) Render(ctx context.Context, w io.Writer, identifier string, data PageData) error {
	tmpl, err := p.lookup(ctx, identifier)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// Exists reports whether a page object is present for the identifier.
func (p *S3Pages) Exists(ctx context.Context, identifier string) (bool, error) {
	_, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.prefix + identifier),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *S3Pages) lookup(ctx context.Context, identifier string) (*template.Template, error) {
	if p.cache {
		p.mu.RLock()
		tmpl, ok := p.templates[identifier]
		p.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.prefix + identifier),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", identifier, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", identifier, err)
	}

	tmpl, err := template.New(identifier).Parse(string(body))
	if err != nil {
		return nil, err
	}

	if p.cache {
		p.mu.Lock()
		p.templates[identifier] = tmpl
		p.mu.Unlock()
	}
	return tmpl, nil
}

func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
