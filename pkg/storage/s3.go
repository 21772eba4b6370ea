package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const (
	// MaxMapFileSize is the maximum allowed size for a map page upload (20MB).
	MaxMapFileSize = 20 * 1024 * 1024
	// FolderMap is the S3 prefix for campus map page objects.
	FolderMap = "map"
	// MapContentType is the only content type accepted for map pages.
	MapContentType = "application/pdf"
)

// S3Config holds S3 client configuration.
type S3Config struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	MapsBucket           string
	PresignExpireMinutes int
}

// S3 provides S3 operations for campus map documents.
type S3 struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	cfg        S3Config
	logger     *zap.Logger
}

// NewS3 creates an S3 client using credentials from config or .env (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY).
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	accessKey := cfg.AccessKeyID
	secretKey := cfg.SecretAccessKey
	if accessKey == "" || secretKey == "" {
		accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		)))
		if logger != nil {
			logger.Info("S3 client using credentials from .env/config", zap.String("region", cfg.Region), zap.String("maps_bucket", cfg.MapsBucket))
		}
	} else if logger != nil {
		logger.Warn("S3 client using default credential chain (AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set)")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024 // 5MB parts for streaming
	})
	downloader := manager.NewDownloader(client)
	return &S3{
		client:     client,
		uploader:   uploader,
		downloader: downloader,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// ValidateMapFileType returns true if the content type or extension marks a PDF.
func ValidateMapFileType(contentType, filename string) bool {
	if strings.EqualFold(contentType, MapContentType) {
		return true
	}
	return strings.EqualFold(path.Ext(filename), ".pdf")
}

// MapPageKey returns the S3 object key for a map page: map/page-{n}.pdf.
func MapPageKey(page int) string {
	return path.Join(FolderMap, fmt.Sprintf("page-%d.pdf", page))
}

// MapPageFromKey parses a page number back out of a map object key, -1 when
// the key is not a page object.
func MapPageFromKey(key string) int {
	base := path.Base(key)
	if !strings.HasPrefix(base, "page-") || !strings.HasSuffix(base, ".pdf") {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "page-"), ".pdf"))
	if err != nil || n < 1 {
		return -1
	}
	return n
}

// UploadMapPage streams a page document to the maps bucket.
func (s *S3) UploadMapPage(ctx context.Context, page int, body io.Reader, contentLength int64) (string, error) {
	var contentLengthPtr *int64
	if contentLength > 0 {
		contentLengthPtr = &contentLength
	}
	key := MapPageKey(page)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.MapsBucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(MapContentType),
		ContentLength: contentLengthPtr,
	})
	if err != nil {
		return "", fmt.Errorf("upload map page: %w", err)
	}
	return key, nil
}

// DownloadMapPage fetches a page document into memory.
func (s *S3) DownloadMapPage(ctx context.Context, page int) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.MapsBucket),
		Key:    aws.String(MapPageKey(page)),
	})
	if err != nil {
		return nil, fmt.Errorf("download map page %d: %w", page, err)
	}
	return buf.Bytes(), nil
}

// PageCount lists the map prefix and returns the highest page number found.
func (s *S3) PageCount(ctx context.Context) (int, error) {
	max := 0
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.cfg.MapsBucket),
			Prefix:            aws.String(FolderMap + "/"),
			ContinuationToken: token,
		})
		if err != nil {
			return 0, fmt.Errorf("list map pages: %w", err)
		}
		for _, obj := range out.Contents {
			if obj.Key == nil {
				continue
			}
			if n := MapPageFromKey(*obj.Key); n > max {
				max = n
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return max, nil
}

// PresignedPageURL returns a pre-signed GET URL for a map page.
func (s *S3) PresignedPageURL(ctx context.Context, page int) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.MapsBucket),
		Key:    aws.String(MapPageKey(page)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.PresignExpire()
	})
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

// PresignExpire returns the configured presign duration.
func (s *S3) PresignExpire() time.Duration {
	if s.cfg.PresignExpireMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(s.cfg.PresignExpireMinutes) * time.Minute
}

// DeleteMapPage removes a page object from the maps bucket.
func (s *S3) DeleteMapPage(ctx context.Context, page int) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.MapsBucket),
		Key:    aws.String(MapPageKey(page)),
	})
	if err != nil {
		return fmt.Errorf("delete map page %d: %w", page, err)
	}
	return nil
}
