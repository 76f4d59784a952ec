package converter

import (
	"context"
)

// Service converts Tableau workbooks into template packages.
type Service interface {
	// ConvertFile reads a workbook file, writes the package next to it
	// and returns the output path.
	ConvertFile(ctx context.Context, inputPath string) (outputPath string, err error)
	// Convert handles one in-memory conversion job.
	Convert(ctx context.Context, req Request) (res Response, err error)
}

// Request is one queued conversion job.
type Request struct {
	UUID     string
	Name     string
	Document []byte
}

// Response carries the produced package bytes.
type Response struct {
	UUID    string
	Name    string
	Package []byte
}
