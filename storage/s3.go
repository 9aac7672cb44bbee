package storage

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"contacts-api/config"
)

// AvatarStore uploads user avatars to an S3-compatible bucket and hands
// back a public URL. Keys are random so a re-upload never collides with a
// cached older image.
type AvatarStore struct {
	client   *s3.S3
	bucket   string
	endpoint string
}

func NewAvatarStore(cfg config.Config) (*AvatarStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.S3Region),
		Endpoint:         aws.String(cfg.S3Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})
	if err != nil {
		return nil, err
	}
	return &AvatarStore{
		client:   s3.New(sess),
		bucket:   cfg.S3Bucket,
		endpoint: cfg.S3Endpoint,
	}, nil
}

func (s *AvatarStore) Upload(file io.ReadSeeker, contentType string) (string, error) {
	key := "avatars/" + uuid.NewString()

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}
