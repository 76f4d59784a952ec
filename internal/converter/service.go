package converter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/twbconv/twb2pbit/internal/layout"
	"github.com/twbconv/twb2pbit/internal/schema"
	"github.com/twbconv/twb2pbit/internal/workbook"
)

type extractFunc func(path string) (workbook.Workbook, error)

type parseFunc func(document []byte) (workbook.Workbook, error)

type schemaBuilder interface {
	Build(wb workbook.Workbook) schema.Model
}

type layoutBuilder interface {
	Build(model schema.Model) layout.Document
}

type serializer interface {
	Serialize(model schema.Model, doc layout.Document) ([]byte, error)
}

type validator interface {
	Validate(pkg []byte) error
}

type path interface {
	Output(base string) string
	Scratch(name string) string
}

type service struct {
	extract extractFunc
	parse   parseFunc

	schema     schemaBuilder
	layout     layoutBuilder
	serializer serializer
	validator  validator
	path       path

	logger log.Logger
}

// NewService ...
func NewService(
	extract extractFunc,
	parse parseFunc,

	schema schemaBuilder,
	layout layoutBuilder,
	serializer serializer,
	validator validator,
	path path,

	logger log.Logger,
) Service {
	return &service{
		extract:    extract,
		parse:      parse,
		schema:     schema,
		layout:     layout,
		serializer: serializer,
		validator:  validator,
		path:       path,
		logger:     logger,
	}
}

// ConvertFile runs the whole pipeline for one workbook file. The
// package is written through a scratch file and renamed, a validation
// failure removes the output.
func (s *service) ConvertFile(ctx context.Context, inputPath string) (outputPath string, err error) {
	logger := log.WithPrefix(s.logger, "method", "ConvertFile", "input", inputPath)

	wb, err := s.extract(inputPath)
	if err != nil {
		level.Error(logger).Log("msg", "extract workbook", "err", err)
		return
	}
	level.Info(logger).Log(
		"msg", "workbook extracted",
		"datasources", len(wb.Datasources),
		"worksheets", len(wb.Worksheets),
	)

	pkg, err := s.convert(wb)
	if err != nil {
		level.Error(logger).Log("msg", "serialize package", "err", err)
		return
	}

	outputPath = s.path.Output(baseName(inputPath))
	if err = s.write(outputPath, pkg); err != nil {
		level.Error(logger).Log("msg", "write package", "output", outputPath, "err", err)
		outputPath = ""
		return
	}

	if err = s.validator.Validate(pkg); err != nil {
		level.Error(logger).Log("msg", "validate package", "err", err)
		os.Remove(outputPath)
		outputPath = ""
		return
	}

	level.Info(logger).Log("msg", "package written", "output", outputPath, "size", len(pkg))
	return
}

// Convert handles one in-memory job, raw workbook bytes in, package
// bytes out.
func (s *service) Convert(ctx context.Context, req Request) (res Response, err error) {
	logger := log.WithPrefix(s.logger, "method", "Convert", "uuid", req.UUID)

	wb, err := s.parse(req.Document)
	if err != nil {
		level.Error(logger).Log("msg", "parse workbook", "err", err)
		return
	}

	res = Response{
		UUID: req.UUID,
		Name: req.Name,
	}
	if res.Package, err = s.convert(wb); err != nil {
		level.Error(logger).Log("msg", "serialize package", "err", err)
		return
	}

	if err = s.validator.Validate(res.Package); err != nil {
		level.Error(logger).Log("msg", "validate package", "err", err)
		return
	}

	level.Info(logger).Log("msg", "package built", "size", len(res.Package))
	return
}

func (s *service) convert(wb workbook.Workbook) ([]byte, error) {
	model := s.schema.Build(wb)
	doc := s.layout.Build(model)
	return s.serializer.Serialize(model, doc)
}

// write stages the package in a scratch file and renames it into
// place, leaving nothing behind on failure.
func (s *service) write(outputPath string, pkg []byte) error {
	scratch := s.path.Scratch(filepath.Base(outputPath))
	if err := os.WriteFile(scratch, pkg, 0644); err != nil {
		return err
	}
	if err := os.Rename(scratch, outputPath); err != nil {
		os.Remove(scratch)
		return err
	}
	return nil
}

func baseName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
