package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// fakeBucket keeps objects in memory, keyed by bucket/key.
type fakeBucket struct {
	objects map[string][]byte
	getErr  error
}

func (f *fakeBucket) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeBucket) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestStore_SaveThenLoad(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}}
	store := NewStore(bucket, "ledger-backups", "prod")
	ctx := context.Background()

	missing, err := store.Load(ctx, "alex")
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved := &ledger.Snapshot{Categories: map[string]ledger.Category{"food": {ID: "food", Name: "Food"}}}
	require.NoError(t, store.Save(ctx, "alex", saved))
	assert.Contains(t, bucket.objects, "ledger-backups/prod/alex.json")

	loaded, err := store.Load(ctx, "alex")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Food", loaded.Categories["food"].Name)
}

func TestStore_LoadError(t *testing.T) {
	store := NewStore(&fakeBucket{getErr: errors.New("access denied")}, "b", "")
	_, err := store.Load(context.Background(), "alex")
	assert.ErrorContains(t, err, "access denied")
}
