package s3store

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/store"
)

// fakeS3 implements the narrow slice of s3iface.S3API this package
// calls; every other method panics if exercised.
type fakeS3 struct {
	s3iface.S3API

	pages   []*s3.ListObjectsV2Output
	listErr error

	getOutput *s3.GetObjectOutput
	getErr    error
}

func (f *fakeS3) ListObjectsV2PagesWithContext(_ aws.Context, _ *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option) error {
	if f.listErr != nil {
		return f.listErr
	}
	for i, page := range f.pages {
		if !fn(page, i == len(f.pages)-1) {
			break
		}
	}
	return nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, _ *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOutput, nil
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

func TestListContentsDirsReadsCommonPrefixes(t *testing.T) {
	fake := &fakeS3{pages: []*s3.ListObjectsV2Output{{
		CommonPrefixes: []*s3.CommonPrefix{
			{Prefix: aws.String("computers/AAAA/")},
			{Prefix: aws.String("computers/BBBB/")},
		},
	}}}
	s := &s3Store{client: fake, bucket: "repo"}

	objs, err := s.ListContents(context.Background(), key.New("computers"), store.Dirs)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "computers/AAAA/", objs[0].Key.String())
}

func TestListContentsFilesReadsContentsAcrossPages(t *testing.T) {
	fake := &fakeS3{pages: []*s3.ListObjectsV2Output{
		{Contents: []*s3.Object{{Key: aws.String("buckets/one"), Size: aws.Int64(10)}}},
		{Contents: []*s3.Object{{Key: aws.String("buckets/two"), Size: aws.Int64(20)}}},
	}}
	s := &s3Store{client: fake, bucket: "repo"}

	objs, err := s.ListContents(context.Background(), key.New("buckets"), store.Files)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, int64(20), objs[1].Size)
}

func TestGetReturnsBody(t *testing.T) {
	fake := &fakeS3{getOutput: &s3.GetObjectOutput{
		Body:          nopCloser{strings.NewReader("hello")},
		ContentLength: aws.Int64(5),
	}}
	s := &s3Store{client: fake, bucket: "repo"}

	data, err := s.Get(context.Background(), key.New("computerinfo"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestGetGlacierStorageClassReturnsGlacierTierError(t *testing.T) {
	fake := &fakeS3{getOutput: &s3.GetObjectOutput{
		Body:         nopCloser{strings.NewReader("")},
		StorageClass: aws.String(s3.StorageClassGlacier),
	}}
	s := &s3Store{client: fake, bucket: "repo"}

	_, err := s.Get(context.Background(), key.New("packsets/x.pack"))
	require.Error(t, err)
	assert.True(t, errIsGlacier(err))
}

func errIsGlacier(err error) bool {
	serr, ok := err.(*store.Error)
	return ok && serr.Kind == store.ErrorGlacierTier
}

func TestMapErrorTranslatesAWSErrorCodes(t *testing.T) {
	noSuchKey := mapError("k", awserr.New(s3.ErrCodeNoSuchKey, "not found", nil))
	require.True(t, store.IsNoSuchObject(noSuchKey))

	denied := mapError("k", awserr.New("AccessDenied", "denied", nil))
	serr, ok := denied.(*store.Error)
	require.True(t, ok)
	assert.Equal(t, store.ErrorAccessDenied, serr.Kind)
}

