package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"residue/internal/config"
	"residue/internal/scan"
)

// s3RequestTimeout bounds every S3 call so an unreachable bucket can
// never hang an export.
const s3RequestTimeout = 60 * time.Second

// S3Vault stores report artifacts in an S3 bucket under
// <prefix>/<reportID>/<name>.
type S3Vault struct {
	name   string
	bucket string
	prefix string
	client *s3.Client
}

// NewS3Vault creates an S3 vault from configuration. Credentials come
// from the config when set, otherwise from the default AWS credential
// chain (environment, shared config, instance role).
func NewS3Vault(cfg config.VaultConfig) (*S3Vault, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 vault requires s3_bucket to be set")
	}
	if cfg.S3Region == "" {
		return nil, fmt.Errorf("s3 vault requires s3_region to be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s3RequestTimeout)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &S3Vault{
		name:   cfg.Name,
		bucket: cfg.S3Bucket,
		prefix: cfg.S3Prefix,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

// objectKey builds the bucket key for a report/artifact pair.
func (v *S3Vault) objectKey(reportID, name string) string {
	return path.Join(v.prefix, reportID, name)
}

// PutReport uploads one named artifact of a report. Uploading the same
// pair again overwrites the previous object.
func (v *S3Vault) PutReport(reportID, name string, r io.Reader, size int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), s3RequestTimeout)
	defer cancel()

	uploader := manager.NewUploader(v.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(v.bucket),
		Key:           aws.String(v.objectKey(reportID, name)),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", v.objectKey(reportID, name), err)
	}
	return nil
}

// GetReport downloads one named artifact of a report and writes it to w.
func (v *S3Vault) GetReport(reportID, name string, w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), s3RequestTimeout)
	defer cancel()

	key := v.objectKey(reportID, name)
	out, err := v.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return fmt.Errorf("artifact %q not found for report: %s", name, reportID)
		}
		return fmt.Errorf("downloading %s: %w", key, err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	return nil
}

// ValidateSetup verifies the bucket exists and is reachable.
func (v *S3Vault) ValidateSetup() error {
	ctx, cancel := context.WithTimeout(context.Background(), s3RequestTimeout)
	defer cancel()

	_, err := v.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(v.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", v.bucket, err)
	}
	return nil
}

// Compile-time check that S3Vault implements scan.Vault
var _ scan.Vault = (*S3Vault)(nil)
