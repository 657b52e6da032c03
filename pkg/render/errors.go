package render

import "errors"

// Render stack errors. Both indicate a push/pop mismatch in a Shape's
// Render implementation rather than bad model input.
var (
	// ErrRenderStackUnderflow reports more pops than pushes.
	ErrRenderStackUnderflow = errors.New("render stack underflow")

	// ErrRenderStackNotEmpty reports unpopped scopes at close.
	ErrRenderStackNotEmpty = errors.New("render stack not empty")
)
