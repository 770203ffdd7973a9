package diag_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cairnmed/dicom/dicom/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReporter_WritesLeveledLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dicom.log")

	fr := diag.NewFileReporter(path, diag.FileReporterOptions{})
	diag.Infof(fr, "opened %s", "study.dcm")
	diag.Errorf(fr, "unexpected EOF at offset %#x", 0x200)
	require.NoError(t, fr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[INFO] opened study.dcm")
	assert.Contains(t, content, "[ERROR] unexpected EOF at offset 0x200")
}
