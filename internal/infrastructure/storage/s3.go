package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// deleteBatch is the most keys one DeleteObjects call accepts.
const deleteBatch = 1000

// objectAPI is the part of *s3.Client the bucket driver calls.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// bucketDisk keeps uploads as objects in one bucket. Directories are key
// prefixes and exist implicitly.
type bucketDisk struct {
	api    objectAPI
	bucket *string
}

func newS3Disk(ctx context.Context, cfg Config) (*bucketDisk, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage/s3: S3_BUCKET is not configured")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if cfg.S3Key != "" && cfg.S3Secret != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, ""),
		))
	}
	awsConfig, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			// MinIO and other self-hosted endpoints need path-style keys.
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &bucketDisk{api: client, bucket: aws.String(cfg.S3Bucket)}, nil
}

func objectKey(p string) *string {
	return aws.String(strings.TrimLeft(p, "/"))
}

func prefixKey(dir string) *string {
	p := strings.Trim(dir, "/")
	if p != "" {
		p += "/"
	}
	return aws.String(p)
}

// Put buffers r so the upload carries a content length.
func (d *bucketDisk) Put(ctx context.Context, p string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return fmt.Errorf("storage/s3: read %s: %w", p, err)
	}
	_, err := d.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        d.bucket,
		Key:           objectKey(p),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", p, err)
	}
	return nil
}

func (d *bucketDisk) Get(ctx context.Context, p string) ([]byte, error) {
	out, err := d.api.GetObject(ctx, &s3.GetObjectInput{Bucket: d.bucket, Key: objectKey(p)})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("storage/s3: get %s: %w", p, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("storage/s3: get %s: %w", p, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: read %s: %w", p, err)
	}
	return data, nil
}

func (d *bucketDisk) Exists(ctx context.Context, p string) (bool, error) {
	_, err := d.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: d.bucket, Key: objectKey(p)})
	if err == nil {
		return true, nil
	}
	var missing *types.NotFound
	if errors.As(err, &missing) {
		return false, nil
	}
	return false, fmt.Errorf("storage/s3: head %s: %w", p, err)
}

func (d *bucketDisk) Delete(ctx context.Context, p string) error {
	if _, err := d.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: d.bucket, Key: objectKey(p)}); err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", p, err)
	}
	return nil
}

// Files lists the direct children of directory; the delimiter folds deeper
// keys into common prefixes.
func (d *bucketDisk) Files(ctx context.Context, directory string) ([]string, error) {
	return d.keys(ctx, directory, aws.String("/"))
}

func (d *bucketDisk) MakeDirectory(context.Context, string) error { return nil }

func (d *bucketDisk) DeleteDirectory(ctx context.Context, directory string) error {
	keys, err := d.keys(ctx, directory, nil)
	if err != nil {
		return err
	}
	for start := 0; start < len(keys); start += deleteBatch {
		end := min(start+deleteBatch, len(keys))
		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(k)})
		}
		_, err := d.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: d.bucket,
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("storage/s3: rmdir %s: %w", directory, err)
		}
	}
	return nil
}

func (d *bucketDisk) keys(ctx context.Context, directory string, delimiter *string) ([]string, error) {
	pages := s3.NewListObjectsV2Paginator(d.api, &s3.ListObjectsV2Input{
		Bucket:    d.bucket,
		Prefix:    prefixKey(directory),
		Delimiter: delimiter,
	})
	var keys []string
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage/s3: list %s: %w", directory, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
