package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hirescope/internal/errors"
	"hirescope/internal/extract"
	"hirescope/internal/utils"
)

// FileProcessor handles common file operations. When constructed with an
// extraction service it also reads binary document formats such as PDF
// and DOCX, returning their plain text.
type FileProcessor struct {
	logger    *errors.Logger
	extractor *extract.Service
}

// NewFileProcessor creates a file processor for plain text inputs
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// NewDocumentProcessor creates a file processor that routes supported
// document formats through the extraction service
func NewDocumentProcessor(logger *errors.Logger, extractor *extract.Service) *FileProcessor {
	return &FileProcessor{logger: logger, extractor: extractor}
}

// readBytes reads the raw content of a file with proper error handling
func (fp *FileProcessor) readBytes(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			// Log the error but don't override the main operation result
			if fp.logger != nil {
				fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
			}
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}

	return content, nil
}

// ReadFile reads a file as plain text
func (fp *FileProcessor) ReadFile(filename string) (string, error) {
	content, err := fp.readBytes(filename)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ReadDocument reads a file and extracts its plain text. Formats the
// extraction service supports go through its parsers; everything else is
// read as-is.
func (fp *FileProcessor) ReadDocument(ctx context.Context, filename string) (string, error) {
	if fp.extractor == nil || !extract.Supported(filename) {
		return fp.ReadFile(filename)
	}

	data, err := fp.readBytes(filename)
	if err != nil {
		return "", err
	}

	text, err := fp.extractor.Extract(ctx, filename, data)
	if err != nil {
		return "", err
	}

	if fp.logger != nil {
		fp.logger.Debug("Extracted document text",
			"filename", filename,
			"extension", utils.GetFileExtension(filename),
			"size", utils.FormatFileSize(int64(len(data))),
			"text_chars", len(text))
	}

	return text, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ValidateAndReadFiles validates and reads multiple input files. Documents
// are extracted when an extraction service is configured.
func (fp *FileProcessor) ValidateAndReadFiles(ctx context.Context, filenames ...string) ([]string, error) {
	contents := make([]string, len(filenames))

	for i, filename := range filenames {
		// Validate input file
		if err := utils.ValidateInputFile(filename); err != nil {
			return nil, errors.NewValidationError("INVALID_INPUT_FILE",
				fmt.Sprintf("Invalid file %s", filename), err)
		}

		// Warn when a file will be read as plain text despite not looking like one
		extractable := fp.extractor != nil && extract.Supported(filename)
		if !extractable && !utils.IsTextFile(filename) {
			if fp.logger != nil {
				fp.logger.Warn("File may not be a text file",
					"filename", filename)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: %s may not be a text file\n", filename)
			}
		}

		content, err := fp.ReadDocument(ctx, filename)
		if err != nil {
			return nil, err // Error already wrapped by ReadDocument
		}

		contents[i] = content
	}

	return contents, nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
