package errors

import "fmt"

// StateWriteFailed creates a persisted-state write failure error
func StateWriteFailed(path string, err error) *IconError {
	return Wrap(err, ErrCodeStateWrite, fmt.Sprintf("failed to write plugin state: %s", path)).
		WithDetail("path", path)
}

// LibraryWriteFailed creates a library catalog write failure error
func LibraryWriteFailed(path string, err error) *IconError {
	return Wrap(err, ErrCodeLibraryWrite, fmt.Sprintf("failed to write icon library: %s", path)).
		WithDetail("path", path)
}

// AssetWriteFailed creates an icon asset file write failure error
func AssetWriteFailed(path string, err error) *IconError {
	return Wrap(err, ErrCodeAssetWrite, fmt.Sprintf("failed to write icon asset: %s", path)).
		WithDetail("path", path)
}

// AllHostsFailed creates an error for a request that failed on every configured host
func AllHostsFailed(requestPath string) *IconError {
	return New(ErrCodeAllHostsFailed,
		fmt.Sprintf("all icon service hosts failed for %s", requestPath)).
		WithDetail("request", requestPath)
}

// ProcessingFailed creates an image processing failure error
func ProcessingFailed(stage string, err error) *IconError {
	return Wrap(err, ErrCodeProcessingFailed, fmt.Sprintf("failed to process image: %s", stage)).
		WithDetail("stage", stage)
}

// InvalidReference creates an error for a malformed icon reference
func InvalidReference(value string, err error) *IconError {
	return Wrap(err, ErrCodeInvalidReference, fmt.Sprintf("invalid icon reference: %s", value)).
		WithDetail("value", value)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *IconError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}
