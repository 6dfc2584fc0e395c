package service

import (
	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/pkg/errors"
)

// errCacheTier marks failures that came from the cache tier rather than the store
var errCacheTier = errors.New("cache tier failure")

func cacheErr(err error) error {
	return errors.Wrapf(errCacheTier, "%v", err)
}

// toCode maps a repository or cache error onto the typed result codes.
// toCode 将仓储或缓存错误映射为错误码
func toCode(err error) error {
	var c *code.Code
	switch {
	case err == nil:
		return nil
	case errors.As(err, &c):
		return c
	case errors.Is(err, domain.ErrNotFound):
		return code.ErrorDocumentNotFound
	case errors.Is(err, errCacheTier):
		return code.ErrorCacheUnavailable
	}
	return code.ErrorStoreUnavailable
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
