package cli

import (
	"fmt"
	"os"

	"github.com/iconica/core/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeAllHostsFailed:
		fmt.Fprintf(os.Stderr, "❌ Every icon service host failed. Check your network, or set custom hosts in iconica.yml.\n")
		return err

	case errors.ErrCodeStateWrite, errors.ErrCodeLibraryWrite, errors.ErrCodeAssetWrite:
		if iconErr, ok := err.(*errors.IconError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not write %v\n", iconErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Check permissions on the data directory.\n")
		}
		return err

	case errors.ErrCodeProcessingFailed:
		fmt.Fprintf(os.Stderr, "❌ Image could not be processed. Supported inputs are PNG, JPEG, GIF and SVG files.\n")
		return err

	case errors.ErrCodeInvalidReference:
		if iconErr, ok := err.(*errors.IconError); ok {
			fmt.Fprintf(os.Stderr, "❌ Invalid icon reference: %v\n", iconErr.Details["value"])
		}
		fmt.Fprintf(os.Stderr, "Use an emoji, a prefix:name glyph id, or a library asset id.\n")
		return err

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		if h.Verbose {
			if iconErr, ok := err.(*errors.IconError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", iconErr.ToJSON())
			}
		}
		return err
	}
}
