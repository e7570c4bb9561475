package artifact

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"github.com/novavoice/novavoice_go_server/config"
)

// OSSStore 阿里云 OSS 存储后端
type OSSStore struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
	cdnDomain  string
}

func NewOSSStore(cfg *config.OSSConfig) (*OSSStore, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStore{
		bucket:     bucket,
		bucketName: cfg.BucketName,
		endpoint:   cfg.Endpoint,
		cdnDomain:  cfg.CDNDomain,
	}, nil
}

func (s *OSSStore) Put(prefix string, data []byte, ext string) (string, error) {
	if !strings.HasPrefix(ext, ".") && ext != "" {
		ext = "." + ext
	}
	ref := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)

	err := s.bucket.PutObject(ref, bytes.NewReader(data), oss.ContentType(contentTypeFor(ext)))
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	return ref, nil
}

func (s *OSSStore) Get(ref string) ([]byte, error) {
	body, err := s.bucket.GetObject(ref)
	if err != nil {
		var ossErr oss.ServiceError
		if ok := errorsAs(err, &ossErr); ok && ossErr.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	defer body.Close()

	return io.ReadAll(body)
}

func (s *OSSStore) URL(ref string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, ref)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, ref)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// errorsAs 包一层避免在多处重复类型断言
func errorsAs(err error, target *oss.ServiceError) bool {
	if se, ok := err.(oss.ServiceError); ok {
		*target = se
		return true
	}
	return false
}
