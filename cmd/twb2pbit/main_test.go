package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twbconv/twb2pbit/internal/options"
)

const sampleWorkbook = `<?xml version='1.0' encoding='utf-8' ?>
<workbook name='Sales'>
  <datasources>
    <datasource name='quarterly'>
      <connection class='postgresql' dbname='crm' server='pg' schema='sales' />
      <column datatype='string' name='[Region]' />
      <column datatype='real' name='[Amount]' />
    </datasource>
  </datasources>
  <worksheets>
    <worksheet name='Sales'>
      <table>
        <panes>
          <pane>
            <mark class='Bar' />
          </pane>
        </panes>
      </table>
    </worksheet>
  </worksheets>
</workbook>`

func TestNewService(t *testing.T) {
	t.Run("wired service converts a workbook", func(t *testing.T) {
		dir := t.TempDir()
		inputPath := filepath.Join(dir, "sales.twb")
		require.NoError(t, os.WriteFile(inputPath, []byte(sampleWorkbook), 0644))

		svc, err := newService(dir, options.Default(), log.NewNopLogger())
		require.NoError(t, err)

		outputPath, err := svc.ConvertFile(context.Background(), inputPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sales.pbit"), outputPath)

		_, err = os.Stat(outputPath)
		assert.NoError(t, err)
	})

	t.Run("missing output directory", func(t *testing.T) {
		_, err := newService(filepath.Join(t.TempDir(), "absent"), options.Default(), log.NewNopLogger())
		assert.Error(t, err)
	})
}
