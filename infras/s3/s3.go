package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName  = "file_name"
	otelAttrBucket    = "bucket"
	otelAttrDirectory = "directory"
)

type S3 interface {
	Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader) (url string, err error)
	UploadBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error)
	Delete(ctx context.Context, directory, objectName string) error
	ObjectNameFromURL(directory, url string) (objectName string)
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

// NewObjectName returns a random object name keeping the extension of original.
func NewObjectName(original string) string {
	name := uuid.NewString()

	if ext := strings.ToLower(filepath.Ext(original)); ext != constant.Empty {
		name += ext
	}

	return name
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	buf := bytes.NewBuffer(nil)

	if _, err = buf.ReadFrom(body); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	return svc.put(ctx, directory, fileName, contentType, buf.Bytes())
}

func (svc *s3Impl) UploadBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return svc.put(ctx, directory, fileName, contentType, fileData)
}

func (svc *s3Impl) Delete(ctx context.Context, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrFileName:  objectName,
		otelAttrBucket:    bucket,
		otelAttrDirectory: directory,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path.Join(directory, objectName)),
	})
	if err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectNameFromURL returns the object name under directory for a URL produced by Upload,
// or an empty string when the URL does not point into the bucket.
func (svc *s3Impl) ObjectNameFromURL(directory, url string) string {
	s3Config := svc.config.External.S3

	prefixes := []string{
		strings.TrimSuffix(s3Config.PublicDomain, "/") + "/" + directory + "/",
		fmt.Sprintf("%s/%s/%s/", strings.TrimSuffix(s3Config.APIEndpoint, "/"), s3Config.BucketName, directory),
	}

	for _, prefix := range prefixes {
		if name, found := strings.CutPrefix(url, prefix); found && name != constant.Empty {
			return name
		}
	}

	return constant.Empty
}

func (svc *s3Impl) put(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	bucket := svc.config.External.S3.BucketName
	objectKey := path.Join(directory, fileName)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("object", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	log.Debug().Str("bucket", bucket).Str("object", objectKey).Int("size", len(data)).Msg("uploaded file to S3")

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(svc.config.External.S3.PublicDomain, "/"), objectKey), nil
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	s3Config := cfg.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
		"",
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Config.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Config.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		config: cfg,
		otel:   otl,
	}
}
