package cli

// SetClipboard replaces the clipboard writer for the duration of a test.
func SetClipboard(fn func(string) error) func() {
	prev := clipboardWriteAll
	clipboardWriteAll = fn

	return func() { clipboardWriteAll = prev }
}
