package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", ":8080", "-x", "ignored", "-d", "dsn"}
	got := FilterArgs(args, []string{"-a", "-d"})
	assert.Equal(t, []string{"-a", ":8080", "-d", "dsn"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "-a=:9090", "--other=zzz"}
	got := FilterArgs(args, []string{"--config", "-a"})
	assert.Equal(t, []string{"--config=conf.json", "-a=:9090"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-a", "-d", "dsn"}
	got := FilterArgs(args, []string{"-a", "-d"})
	// -a has no value (next arg is another flag), so only the flag is kept
	assert.Equal(t, []string{"-a", "-d", "dsn"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJsonConfigFlags_ShortAndLong(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"test", "-c", "short.json"}
	assert.Equal(t, "short.json", JsonConfigFlags())

	os.Args = []string{"test", "-config=long.json"}
	assert.Equal(t, "long.json", JsonConfigFlags())

	os.Args = []string{"test", "-a", ":8080"}
	assert.Equal(t, "", JsonConfigFlags())
}
