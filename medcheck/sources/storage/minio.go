package storage

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"medcheck/medcheck/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PageArchive keeps the raw HTML of every scraped page in object storage so
// a parse can be replayed without re-fetching the source site.
type PageArchive struct {
	client *minio.Client
	bucket string
}

type PageObject struct {
	URL       string    `json:"url"`
	HTML      string    `json:"html"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPageArchive(cfg config.Config) (*PageArchive, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &PageArchive{client: client, bucket: bucket}, nil
}

// ArchivePage stores the page under a key derived from the URL hash and
// returns that key. Archiving the same URL twice overwrites the old copy.
func (a *PageArchive) ArchivePage(ctx context.Context, url, html string) (string, error) {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(url)))
	key := filepath.Join("pages", fmt.Sprintf("%s.json", hash))

	obj := PageObject{
		URL:       url,
		HTML:      html,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	_, err = a.client.PutObject(ctx, a.bucket, key, strings.NewReader(string(data)), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", err
	}

	return key, nil
}

func (a *PageArchive) GetPage(ctx context.Context, key string) (*PageObject, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	var page PageObject
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
