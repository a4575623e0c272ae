package library

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// nowMillis is swappable in tests.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// NewAssetID generates a time-based asset id matching entries created by
// the upload flow.
func NewAssetID() string {
	return "custom-" + strconv.FormatInt(nowMillis(), 10)
}

// DisplayName derives an asset display name from an uploaded filename:
// the base name without its extension.
func DisplayName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
