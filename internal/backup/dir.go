package backup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/interviewkeeper/internal/filex"
)

// DirUploader is an Uploader that stores objects as files under a local
// directory, keyed by their object key. It serves offline exports.
type DirUploader struct {
	Dir string
}

func (d DirUploader) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	if key == "" || !filepath.IsLocal(key) {
		return nil, fmt.Errorf("invalid object key %q", key)
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if err := filex.WriteFileAtomic(filepath.Join(d.Dir, filepath.FromSlash(key)), data); err != nil {
		return nil, err
	}
	return &s3.PutObjectOutput{}, nil
}
