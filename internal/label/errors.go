package label

import "fmt"

// Kind classifies a render failure.
type Kind int

// Failure categories, mirrored by the CLI exit codes.
const (
	KindAssetLoading Kind = iota + 1
	KindImageLoading
	KindImageProcessing
	KindImageSaving
	KindTextRendering
	KindIO
	KindNoImageSelected
	KindInvalidConfig
	KindInvalidFormat
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindAssetLoading:
		return "asset_loading"
	case KindImageLoading:
		return "image_loading"
	case KindImageProcessing:
		return "image_processing"
	case KindImageSaving:
		return "image_saving"
	case KindTextRendering:
		return "text_rendering"
	case KindIO:
		return "io"
	case KindNoImageSelected:
		return "no_image_selected"
	case KindInvalidConfig:
		return "invalid_config"
	case KindInvalidFormat:
		return "invalid_format"
	}
	return "unknown"
}

// ExitCode maps the kind to the CLI process exit code.
func (k Kind) ExitCode() int {
	switch k {
	case KindImageLoading, KindImageProcessing, KindImageSaving:
		return 4
	case KindAssetLoading:
		return 3
	case KindIO:
		return 5
	case KindNoImageSelected, KindInvalidFormat:
		return 2
	case KindInvalidConfig:
		return 6
	}
	return 1
}

// Error is the typed failure surfaced by a render. A failed render
// returns no partial image, only an *Error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errf builds an *Error with a formatted message.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around a cause.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
