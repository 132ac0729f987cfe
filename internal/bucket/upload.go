package bucket

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

const contentTypeCSV = "text/csv"

// UploadExport stores a CSV export under the base folder and returns the
// public URL of the object.
func (b *Bucket) UploadExport(ctx context.Context, name string, body []byte) (string, error) {
	fp := b.constructFullPath(name)
	_, err := b.cli.PutObject(ctx, b.S3BucketName, fp, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType:        contentTypeCSV,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", baseName(name)),
	})
	if err != nil {
		return "", fmt.Errorf("PutObject:err [%v]", err.Error())
	}
	return b.getCDNURL(fp), nil
}
