package source

import (
	"context"
	"os"
	"strings"

	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/httputil"
)

// Client downloads remote inputs. Tests may replace it.
var Client = httputil.NewClient()

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Read returns the raw bytes of src, a local path or an http(s) URL.
// Missing inputs fail with ErrCodeFileNotFound.
func Read(ctx context.Context, src string) ([]byte, error) {
	if IsRemote(src) {
		return Client.Get(ctx, src)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, err, "read %s", src)
	}

	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", src)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s", src)
	}
	return data, nil
}
