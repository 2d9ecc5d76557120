package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	delays := []time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		500 * time.Millisecond,
	}

	require.NoError(t, Write(&sb, delays))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Attempt,Delay(ms)", lines[0])
	assert.Equal(t, "1,100", lines[1])
	assert.Equal(t, "2,100", lines[2])
	assert.Equal(t, "3,200", lines[3])
	assert.Equal(t, "4,300", lines[4])
	assert.Equal(t, "5,500", lines[5])
}

func TestWrite_EmptyLadder(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	require.NoError(t, Write(&sb, nil))
	assert.Equal(t, "Attempt,Delay(ms)", strings.TrimSpace(sb.String()))
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ladder.csv")
	require.NoError(t, WriteFile(path, []time.Duration{time.Second, time.Second}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,1000", lines[1])
	assert.Equal(t, "2,1000", lines[2])
}

func TestWriteFile_BadPath(t *testing.T) {
	t.Parallel()

	err := WriteFile(filepath.Join(t.TempDir(), "missing", "ladder.csv"), nil)
	assert.Error(t, err)
}
