package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchiveLabel(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 label"))
	}))
	defer src.Close()

	put := &fakePutter{}
	s := newR2Storage(put, src.Client(), "labels", "https://cdn.shop.in/", time.Second)

	url, err := s.ArchiveLabel(context.Background(), "shiprocket", "7001", src.URL+"/label.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.shop.in/labels/shiprocket/7001.pdf", url)
	assert.Equal(t, "labels/shiprocket/7001.pdf", put.key)
	assert.Equal(t, "application/pdf", put.contentType)
	assert.Equal(t, "%PDF-1.4 label", string(put.body))
}

func TestArchiveLabel_SanitizesKey(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer src.Close()

	put := &fakePutter{}
	s := newR2Storage(put, src.Client(), "labels", "https://cdn", time.Second)
	_, err := s.ArchiveLabel(context.Background(), "delhivery", "../../etc", src.URL)
	require.NoError(t, err)
	assert.Equal(t, "labels/delhivery/____etc.pdf", put.key)
}

func TestArchiveLabel_Errors(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("x"))
	}))
	defer src.Close()

	s := newR2Storage(&fakePutter{}, src.Client(), "labels", "https://cdn", time.Second)
	_, err := s.ArchiveLabel(context.Background(), "delhivery", "1", src.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")

	failing := newR2Storage(&fakePutter{err: errors.New("denied")}, src.Client(), "labels", "https://cdn", time.Second)
	_, err = failing.ArchiveLabel(context.Background(), "delhivery", "1", src.URL)
	assert.ErrorContains(t, err, "failed to upload")
}
