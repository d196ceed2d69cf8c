package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/orsoie/gallery-service/internal/repo"
	"github.com/orsoie/gallery-service/pkg/s3client"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

type BlobRepo struct {
	*s3client.S3Client
	bucket string
}

func NewBlobRepo(s3c *s3client.S3Client, bucket string) *BlobRepo {
	return &BlobRepo{s3c, bucket}
}

func (r *BlobRepo) List(ctx context.Context, prefix string) ([]repo.ObjectInfo, error) {
	var objects []repo.ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(r.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("BlobRepo - List - paginator.NextPage: %w", err)
		}

		for _, obj := range page.Contents {
			info := repo.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			objects = append(objects, info)
		}
	}

	return objects, nil
}

func (r *BlobRepo) Head(ctx context.Context, key string) (*repo.ObjectMeta, error) {
	out, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, errs.ErrObjectNotFound
		}
		return nil, fmt.Errorf("BlobRepo - Head - r.Client.HeadObject: %w", err)
	}

	meta := headMeta(out.ContentLength, out.ContentType, out.Metadata, out.LastModified)

	return &meta, nil
}

func (r *BlobRepo) Get(ctx context.Context, key string) (*repo.Object, error) {
	out, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errs.ErrObjectNotFound
		}
		return nil, fmt.Errorf("BlobRepo - Get - r.Client.GetObject: %w", err)
	}

	return &repo.Object{
		Body: out.Body,
		Meta: headMeta(out.ContentLength, out.ContentType, out.Metadata, out.LastModified),
	}, nil
}

func (r *BlobRepo) GetBytes(ctx context.Context, key string) ([]byte, *repo.ObjectMeta, error) {
	obj, err := r.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	defer obj.Body.Close()

	b, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("BlobRepo - GetBytes - io.ReadAll: %w", err)
	}

	return b, &obj.Meta, nil
}

func (r *BlobRepo) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("BlobRepo - Put - r.Client.PutObject: %w", err)
	}

	return nil
}

func headMeta(size *int64, contentType *string, metadata map[string]string, lastModified *time.Time) repo.ObjectMeta {
	meta := repo.ObjectMeta{
		Size:           aws.ToInt64(size),
		ContentType:    aws.ToString(contentType),
		CustomMetadata: metadata,
	}
	if lastModified != nil {
		meta.LastModified = *lastModified
	}

	return meta
}
