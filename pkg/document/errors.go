package document

import "fmt"

// FileLoadError reports a failed document load: an I/O failure, invalid
// UTF-8 content, or a container structure violation.
type FileLoadError struct {
	Path string
	Err  error
}

func (e *FileLoadError) Error() string {
	return fmt.Sprintf("failed to load file %s: %v", e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() error {
	return e.Err
}

// FileSaveError reports a failed document save: no resolvable target path,
// or an I/O failure on write.
type FileSaveError struct {
	Path string
	Err  error
}

func (e *FileSaveError) Error() string {
	if e.Path == "" {
		return "failed to save: no file path specified"
	}
	return fmt.Sprintf("failed to save file %s: %v", e.Path, e.Err)
}

func (e *FileSaveError) Unwrap() error {
	return e.Err
}

// XMLFormatError reports that formatting was requested on malformed XML.
type XMLFormatError struct {
	Err error
}

func (e *XMLFormatError) Error() string {
	return fmt.Sprintf("invalid XML content: %v", e.Err)
}

func (e *XMLFormatError) Unwrap() error {
	return e.Err
}
