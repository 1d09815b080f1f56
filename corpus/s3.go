package corpus

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kbukum/seqinput/errors"
)

// DefaultRegion is the default AWS region.
const DefaultRegion = "us-east-1"

// S3Config holds S3 connection settings for s3:// corpus URLs.
type S3Config struct {
	// Region is the AWS region.
	Region string `yaml:"region" mapstructure:"region"`
	// Endpoint is a custom S3-compatible endpoint (e.g. MinIO).
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// AccessKey is the AWS access key ID. Empty uses the default credential chain.
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	// SecretKey is the AWS secret access key.
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	// ForcePathStyle forces path-style URLs instead of virtual-hosted-style.
	ForcePathStyle bool `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *S3Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Validate checks that static credentials come in pairs.
func (c *S3Config) Validate() error {
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("storage.s3: access_key and secret_key must be set together")
	}
	return nil
}

// objectGetter is the subset of the S3 client used for reads.
type objectGetter interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
}

// S3Opener streams objects addressed as s3://bucket/key.
type S3Opener struct {
	client objectGetter
}

// NewS3Opener builds an S3 client from cfg.
func NewS3Opener(ctx context.Context, cfg S3Config) (*S3Opener, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("corpus: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	return &S3Opener{client: awss3.NewFromConfig(awsCfg, s3Opts...)}, nil
}

// Open fetches the object body. A missing key fails with FILE_NOT_FOUND.
func (o *S3Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URL(path)
	if err != nil {
		return nil, err
	}
	out, err := o.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, objectErr(path, err)
	}
	return out.Body, nil
}

// Check issues a HEAD request for the object.
func (o *S3Opener) Check(ctx context.Context, path string) error {
	bucket, key, err := ParseS3URL(path)
	if err != nil {
		return err
	}
	_, err = o.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return objectErr(path, err)
	}
	return nil
}

func objectErr(path string, err error) error {
	var noKey *types.NoSuchKey
	var noBucket *types.NoSuchBucket
	var notFound *types.NotFound
	if stderrors.As(err, &noKey) || stderrors.As(err, &noBucket) || stderrors.As(err, &notFound) {
		return errors.FileNotFound(path).WithCause(err)
	}
	return errors.Internal(err).WithDetail("path", path)
}

// ParseS3URL splits s3://bucket/key into its parts.
func ParseS3URL(path string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(path, "s3://")
	if !ok {
		return "", "", errors.InvalidArgument("path", fmt.Sprintf("%q is not an s3:// URL", path))
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", errors.InvalidArgument("path", fmt.Sprintf("%q must name a bucket and a key", path))
	}
	return bucket, key, nil
}
