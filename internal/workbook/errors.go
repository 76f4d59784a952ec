package workbook

import (
	"errors"
)

var (
	errNotWorkbook     = errors.New("document has no workbook element")
	errNoWorkbookEntry = errors.New("no .twb entry in packaged workbook")
)
