package common

import (
	"context"
	"fmt"

	"hirescope/internal/errors"
)

// CreateInputFunc defines how to build the command input from file contents.
type CreateInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// OperationFunc is a generic function signature for the work a command performs.
type OperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunFileCommand encapsulates the common logic for file-based CLI commands:
// validate and read inputs, build the typed input, run the operation, and
// write the formatted result. A nil files processor falls back to plain
// text reads.
func RunFileCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	files *FileProcessor,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation OperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	if files == nil {
		files = NewFileProcessor(logger)
	}
	outputHandler := NewOutputHandler(logger)

	contents, err := files.ValidateAndReadFiles(ctx, args...)
	if err != nil {
		return err
	}

	input, err := createInput(contents)
	if err != nil {
		return fmt.Errorf("failed to create input from file contents: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
