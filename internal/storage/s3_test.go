package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPublicBaseURL(t *testing.T) {
	cases := []struct {
		name string
		opts S3Options
		want string
	}{
		{"aws default region", S3Options{Bucket: "blog"}, "https://blog.s3.us-east-1.amazonaws.com"},
		{"aws region", S3Options{Bucket: "blog", Region: "eu-west-1"}, "https://blog.s3.eu-west-1.amazonaws.com"},
		{"custom endpoint", S3Options{Bucket: "blog", Endpoint: "http://localhost:9000/"}, "http://localhost:9000/blog"},
		{"public base wins", S3Options{Bucket: "blog", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
	}
	for _, tc := range cases {
		if got := publicBaseURL(tc.opts); got != tc.want {
			t.Errorf("%s: publicBaseURL = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestKeyForURL(t *testing.T) {
	svc := NewS3Service(nil, S3Options{Bucket: "blog", KeyPrefix: "/post-images/", PublicBaseURL: "https://cdn.example.com"})

	key, ok := svc.keyForURL("https://cdn.example.com/post-images/abc.png")
	if !ok || key != "post-images/abc.png" {
		t.Fatalf("keyForURL own image = %q %v", key, ok)
	}

	for _, url := range []string{
		"https://elsewhere.example.com/post-images/abc.png",
		"https://cdn.example.com/other/abc.png",
		"https://cdn.example.com/post-images/",
		"https://cdn.example.com/post-images/nested/abc.png",
	} {
		if _, ok := svc.keyForURL(url); ok {
			t.Errorf("keyForURL(%q) should not claim a foreign URL", url)
		}
	}
}

func TestDeleteImageIgnoresForeignURL(t *testing.T) {
	svc := NewS3Service(nil, S3Options{Bucket: "blog", KeyPrefix: "post-images", PublicBaseURL: "https://cdn.example.com"})
	if err := svc.DeleteImage(context.Background(), "https://images.example.org/header.jpg"); err != nil {
		t.Fatalf("DeleteImage foreign URL returned error: %v", err)
	}
}

func TestPutImageRejectsNonImage(t *testing.T) {
	svc := NewS3Service(nil, S3Options{Bucket: "blog", PublicBaseURL: "https://cdn.example.com"})
	_, err := svc.PutImage(context.Background(), strings.NewReader("just some text, not a picture"))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("PutImage text error = %v, want ErrNotImage", err)
	}
}

func TestPutImageRejectsOversizedUpload(t *testing.T) {
	svc := NewS3Service(nil, S3Options{Bucket: "blog", PublicBaseURL: "https://cdn.example.com"})
	_, err := svc.PutImage(context.Background(), strings.NewReader(strings.Repeat("a", MaxImageBytes+1)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("PutImage oversized error = %v, want ErrTooLarge", err)
	}
}
