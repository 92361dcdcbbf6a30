package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseBackend keeps blobs in a public Supabase Storage bucket.
type SupabaseBackend struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
}

func NewSupabaseBackend(supabaseURL, serviceKey, bucket string) (*SupabaseBackend, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := strings.TrimRight(supabaseURL, "/")

	client, err := supabase.NewClient(baseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseBackend{
		client:  client.Storage,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *SupabaseBackend) Put(ctx context.Context, p string, data []byte, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, p, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

func (s *SupabaseBackend) Delete(ctx context.Context, p string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{p}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *SupabaseBackend) publicPrefix() string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
}

func (s *SupabaseBackend) URL(p string) string {
	return s.publicPrefix() + p
}

func (s *SupabaseBackend) PathFromURL(rawURL string) (string, bool) {
	rel, found := strings.CutPrefix(rawURL, s.publicPrefix())
	if !found {
		return "", false
	}
	return cleanRelative(rel)
}
