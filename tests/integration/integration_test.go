package integration_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/scenedir/internal/blob"
	"github.com/localnerve/scenedir/tests/helpers"
)

// TestBlobStoreWithMinIO tests the blob store against a real MinIO container
func TestBlobStoreWithMinIO(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	accessKey := os.Getenv("BLOB_ACCESS_KEY")
	secretKey := os.Getenv("BLOB_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		accessKey = "minioadmin"
		secretKey = "minioadmin"
		os.Setenv("BLOB_ACCESS_KEY", accessKey)
		os.Setenv("BLOB_SECRET_KEY", secretKey)
	}

	tc, err := helpers.CreateMinIOContainer(t)
	if err != nil {
		t.Fatalf("Failed to start MinIO container: %v", err)
	}
	defer tc.Terminate(t)

	ctx := context.Background()

	store, err := blob.New(ctx, blob.Options{
		Bucket:     "scenedir-it",
		Region:     "us-east-1",
		Endpoint:   tc.MinIOEndpoint,
		AccessKey:  accessKey,
		SecretKey:  secretKey,
		PresignTTL: 2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Failed to create blob store: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		t.Fatalf("Failed to ensure bucket: %v", err)
	}

	key := blob.BuildKey("Campus", "L1", "lobby.jpg")
	if !strings.HasPrefix(key, "Campus/L1/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("Unexpected key shape: %q", key)
	}

	t.Run("UploadAndParseKey", func(t *testing.T) {
		publicURL, err := store.Upload(ctx, key, strings.NewReader("fake image bytes"), "image/jpeg")
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		parsed, ok := store.TryParseKey(publicURL)
		if !ok || parsed != key {
			t.Errorf("TryParseKey(%q) = %q, %v; expected %q", publicURL, parsed, ok, key)
		}
	})

	t.Run("PresignDownload", func(t *testing.T) {
		url, err := store.PresignDownload(ctx, key, "lobby.jpg")
		if err != nil {
			t.Fatalf("Presign failed: %v", err)
		}

		resp, err := http.Get(url)
		if err != nil {
			t.Fatalf("Presigned GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200 from presigned URL, got %d", resp.StatusCode)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, `filename="lobby.jpg"`) {
			t.Errorf("Expected attachment disposition, got %q", cd)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "fake image bytes" {
			t.Errorf("Body mismatch: %q", body)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		if res := store.Delete(ctx, key); !res.OK() {
			t.Errorf("Delete failed: %v", res.Err)
		}
		// a second delete of the same key still counts as success
		if res := store.Delete(ctx, key); res.Fatal() {
			t.Errorf("Repeat delete must not be fatal: %v", res.Err)
		}
	})

	t.Run("ForeignURLNotParsed", func(t *testing.T) {
		if _, ok := store.TryParseKey("https://elsewhere.example.com/some/key.jpg"); ok {
			t.Error("Foreign URL must not parse to a key")
		}
	})
}
