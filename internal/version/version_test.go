package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	original, originalCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = original, originalCommit })

	Version, Commit = "v1.2.3", ""
	assert.Equal(t, "pdx v1.2.3", String())

	Commit = "abc1234"
	assert.Equal(t, "pdx v1.2.3 (abc1234)", String())
}
