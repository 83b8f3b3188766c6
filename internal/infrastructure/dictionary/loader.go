package dictionary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

const s3Scheme = "s3://"

// Loader fetches and parses dictionaries from the filesystem or S3.
// Locations of the form s3://bucket/key are read from S3; anything else is a path on FS.
type Loader struct {
	FS     afero.Fs
	S3     S3API
	Logger app.Logger
}

// NewLoader creates a loader. s3Client may be nil when S3 locations are not used.
func NewLoader(fs afero.Fs, s3Client S3API) *Loader {
	return &Loader{FS: fs, S3: s3Client, Logger: app.GetLogger()}
}

// NewS3Client builds an S3 client from the default AWS configuration chain
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if region != "" {
		awsCfg.Region = region
	}
	return s3.NewFromConfig(awsCfg), nil
}

// IsS3Location reports whether location points at S3
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// Load reads and parses the dictionary at location.
// Every failure wraps fix.ErrDictionaryUnavailable.
func (l *Loader) Load(ctx context.Context, location string) (*Index, error) {
	if strings.TrimSpace(location) == "" {
		return nil, unavailable(location, fmt.Errorf("no dictionary location configured"))
	}

	var (
		data []byte
		name string
		err  error
	)
	if IsS3Location(location) {
		data, name, err = l.readS3(ctx, location)
	} else {
		data, err = afero.ReadFile(l.FS, location)
		name = filepath.Base(location)
	}
	if err != nil {
		return nil, unavailable(location, err)
	}

	idx, err := parseByExtension(name, data)
	if err != nil {
		return nil, unavailable(location, err)
	}

	if l.Logger != nil {
		l.Logger.Debug("dictionary: loaded %s version=%s fields=%d", location, idx.Version(), idx.Len())
	}
	return idx, nil
}

func (l *Loader) readS3(ctx context.Context, location string) ([]byte, string, error) {
	if l.S3 == nil {
		return nil, "", fmt.Errorf("no S3 client configured")
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return nil, "", fmt.Errorf("invalid S3 location, want s3://bucket/key")
	}

	out, err := l.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("download from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read S3 object: %w", err)
	}
	return data, path.Base(key), nil
}

func parseByExtension(name string, data []byte) (*Index, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return ParseXML(bytes.NewReader(data))
	case ".yml", ".yaml":
		return ParseYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported dictionary format %q", filepath.Ext(name))
	}
}

func unavailable(location string, err error) error {
	return &fix.DecodeError{
		Op:    "load dictionary",
		Cause: fmt.Errorf("%w: %s: %w", fix.ErrDictionaryUnavailable, location, err),
	}
}
