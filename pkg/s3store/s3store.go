package s3store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/cuemby/snapvault/internal/config"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/store"
)

// Driver is the pkg/store.Store label s3store instances report to
// pkg/metrics instrumentation.
const Driver = "s3"

// glacierStorageClasses names the S3 storage classes Get refuses to
// fetch, matching spec.md §1's Glacier non-goal: the object is present
// but this client will not thaw it.
var glacierStorageClasses = map[string]bool{
	s3.StorageClassGlacier:     true,
	s3.StorageClassDeepArchive: true,
}

// s3Store implements pkg/store.Store against a single S3 bucket.
// client is held as s3iface.S3API rather than the concrete *s3.S3 so
// tests can substitute a fake.
type s3Store struct {
	client s3iface.S3API
	bucket string
}

// New returns a Store backed by cfg's bucket and credentials.
func New(cfg config.Config) (store.Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("s3store: new session: %w", err)
	}
	return &s3Store{client: s3.New(sess), bucket: cfg.BucketName}, nil
}

// ListContents lists objects under prefix. Dirs uses a "/" delimiter
// so S3 itself groups immediate child prefixes; Files pages through
// every key recursively under prefix. The two flags are never
// requested together by the repository core; both share one
// pagination loop, and when Dirs is set the "/" delimiter also limits
// Files to objects directly under prefix.
func (s *s3Store) ListContents(ctx context.Context, prefix key.Key, flags store.ListFlags) ([]store.Object, error) {
	prefixStr := prefix.String()
	if prefixStr != "" && prefixStr[len(prefixStr)-1] != '/' {
		prefixStr += "/"
	}

	var out []store.Object
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefixStr),
	}
	if flags.Has(store.Dirs) {
		input.Delimiter = aws.String("/")
	}

	err := s.client.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		if flags.Has(store.Dirs) {
			for _, cp := range page.CommonPrefixes {
				out = append(out, store.Object{Key: key.New(aws.StringValue(cp.Prefix))})
			}
		}
		if flags.Has(store.Files) {
			for _, obj := range page.Contents {
				out = append(out, store.Object{
					Key:  key.New(aws.StringValue(obj.Key)),
					Size: aws.Int64Value(obj.Size),
				})
			}
		}
		return true
	})
	if err != nil {
		return nil, mapError(prefixStr, err)
	}
	return out, nil
}

// Get fetches the full body of the object at k. An object stored in a
// cold tier (Glacier, Deep Archive) returns store.ErrGlacierTier
// without attempting a restore.
func (s *s3Store) Get(ctx context.Context, k key.Key) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k.String()),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == "InvalidObjectState" {
			return nil, store.NewError(store.ErrorGlacierTier, k.String(), err)
		}
		return nil, mapError(k.String(), err)
	}
	defer out.Body.Close()

	if glacierStorageClasses[aws.StringValue(out.StorageClass)] {
		return nil, store.NewError(store.ErrorGlacierTier, k.String(), nil)
	}

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, store.NewError(store.ErrorNetwork, k.String(), err)
	}
	return data, nil
}

// mapError maps an AWS SDK error onto pkg/store's taxonomy, the
// boundary where every driver-native error code gets translated into
// spec.md §7's four kinds (plus the additive glacier kind).
func mapError(objKey string, err error) error {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return store.NewError(store.ErrorNetwork, objKey, err)
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return store.NewError(store.ErrorNoSuchObject, objKey, err)
	case "AccessDenied":
		return store.NewError(store.ErrorAccessDenied, objKey, err)
	default:
		return store.NewError(store.ErrorNetwork, objKey, err)
	}
}
