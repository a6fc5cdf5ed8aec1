package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/netroute-lab/routeview/internal/logging"
)

// Fetcher returns the raw bytes of a source document.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// S3GetObjectAPI is the slice of the S3 client the fetcher needs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Options struct {
	Timeout   time.Duration
	AWSRegion string
	// S3 overrides the lazily built S3 client.
	S3 S3GetObjectAPI
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
	// MaxBytes overrides MaxDocumentBytes.
	MaxBytes int64
}

// Client fetches documents from http(s)://, s3:// and file:// locations.
// A location without a scheme is read from the local filesystem.
type Client struct {
	httpClient *http.Client
	region     string
	maxBytes   int64

	s3Once sync.Once
	s3     S3GetObjectAPI
	s3Err  error
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = MaxDocumentBytes
	}
	c := &Client{
		httpClient: hc,
		region:     opts.AWSRegion,
		maxBytes:   opts.MaxBytes,
	}
	if opts.S3 != nil {
		c.s3 = opts.S3
		c.s3Once.Do(func() {})
	}
	return c
}

func (c *Client) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("empty source location")
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse source location: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)

	start := time.Now()
	var b []byte
	switch scheme {
	case "http", "https":
		b, err = c.fetchHTTP(ctx, location)
	case "s3":
		b, err = c.fetchS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	case "file":
		b, err = c.readFile(filePath(u))
	case "":
		scheme = "file"
		b, err = c.readFile(location)
	default:
		err = fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
	recordFetch(scheme, time.Since(start), err)

	if err != nil {
		logging.NewLogger(ctx).LogErrorf("fetch_source", "location=%s error=%v", location, err)
		return nil, err
	}
	return b, nil
}

func (c *Client) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source %s returned status %d", location, resp.StatusCode)
	}
	b, err := c.readAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read source body: %w", err)
	}
	return b, nil
}

func (c *Client) fetchS3(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 location needs bucket and key")
	}
	api, err := c.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	b, err := c.readAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 body: %w", err)
	}
	return b, nil
}

func (c *Client) s3Client(ctx context.Context) (S3GetObjectAPI, error) {
	c.s3Once.Do(func() {
		var loadOpts []func(*awscfg.LoadOptions) error
		if c.region != "" {
			loadOpts = append(loadOpts, awscfg.WithRegion(c.region))
		}
		cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			c.s3Err = fmt.Errorf("load aws config: %w", err)
			return
		}
		c.s3 = s3.NewFromConfig(cfg)
	})
	return c.s3, c.s3Err
}

func (c *Client) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.readAll(f)
}

// readAll reads one byte past the limit so an oversize document fails
// instead of parsing as a truncated prefix.
func (c *Client) readAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > c.maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrDocumentTooLarge, c.maxBytes)
	}
	return b, nil
}

// filePath resolves file:///abs, file://localhost/abs and the relative
// forms file://dir/x.yaml and file:dir/x.yaml.
func filePath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	if u.Host == "" || strings.EqualFold(u.Host, "localhost") {
		return u.Path
	}
	return u.Host + u.Path
}
