package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/flightlog/internal/config"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	project := newWorkspace(t)

	stdout, _, err := executeCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# sources: defaults")
	assert.Contains(t, stdout, "changelog_dir: docs")
	assert.Contains(t, stdout, "changelog_file: AI_CHANGELOG.md")
	assert.Contains(t, stdout, "git_timeout: 5s")
	assert.Contains(t, stdout, "plain: false")

	custom := filepath.Join(project, "custom.yml")
	writeFile(t, custom, "changelog_dir: notes\n")
	stdout, _, err = executeCLI(t, "--config", custom, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# source: "+custom)
	assert.Contains(t, stdout, "changelog_dir: notes")
}

func TestConfigInit(t *testing.T) {
	project := newWorkspace(t)
	path := filepath.Join(project, ".flightlog", "config.yml")

	stdout, _, err := executeCLI(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created "+filepath.Join(".flightlog", "config.yml"))
	assert.Equal(t, config.GetDefaultConfigTemplate(), readFile(t, path))

	_, stderr, err := executeCLI(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, stderr, "Config file already exists")

	writeFile(t, path, "plain: true\n")
	_, _, err = executeCLI(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), readFile(t, path))
}

func TestConfigInit_User(t *testing.T) {
	newWorkspace(t)

	_, _, err := executeCLI(t, "config", "init", "--user")
	require.NoError(t, err)

	userPath, err := config.UserConfigPath()
	require.NoError(t, err)
	assert.FileExists(t, userPath)
}

func TestConfigSet(t *testing.T) {
	project := newWorkspace(t)

	stdout, _, err := executeCLI(t, "config", "set", "git_timeout", "1500ms")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set git_timeout = 1.5s")

	stdout, _, err = executeCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "git_timeout: 1.5s")
	assert.Contains(t, stdout, "# source: "+filepath.Join(".flightlog", "config.yml"))

	_, stderr, err := executeCLI(t, "config", "set", "changelog_file", "docs/LOG.md")
	require.Error(t, err)
	assert.Contains(t, stderr, "Setting changelog_file")

	_, stderr, err = executeCLI(t, "config", "set", "editor", "vim")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown configuration key: editor")

	_, _, err = executeCLI(t, "config", "set", "git_timeout")
	require.Error(t, err)

	assert.NotContains(t, readFile(t, filepath.Join(project, ".flightlog", "config.yml")), "LOG.md")
}

func TestConfigKeys(t *testing.T) {
	newWorkspace(t)

	stdout, _, err := executeCLI(t, "config", "keys")
	require.NoError(t, err)
	for _, key := range config.KeyNames() {
		assert.Contains(t, stdout, key)
	}
	assert.Contains(t, stdout, "git_timeout (duration, default 5s)")
}

func TestConfigMigrate(t *testing.T) {
	project := newWorkspace(t)
	jsonPath := filepath.Join(project, ".flightlog", "config.json")
	writeFile(t, jsonPath, `{"changelog_dir": "notes"}`)

	stdout, _, err := executeCLI(t, "config", "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Would migrate")
	assert.FileExists(t, jsonPath)

	stdout, _, err = executeCLI(t, "config", "migrate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Migrated")
	assert.Contains(t, stdout, "Backed up")
	assert.NoFileExists(t, jsonPath)
	assert.FileExists(t, jsonPath+".bak")

	stdout, _, err = executeCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "changelog_dir: notes")
}

func TestConfigSet_FromSubdirectoryTargetsProjectRoot(t *testing.T) {
	project := newWorkspace(t)
	_, err := git.PlainInit(project, false)
	require.NoError(t, err)

	sub := filepath.Join(project, "cmd", "tool")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	_, _, err = executeCLI(t, "config", "set", "changelog_dir", "notes")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(project, ".flightlog", "config.yml"))
	assert.NoDirExists(t, filepath.Join(sub, ".flightlog"))

	stdout, _, err := executeCLI(t, "path", "--root")
	require.NoError(t, err)
	assert.Equal(t, project+"\n", stdout)

	stdout, _, err = executeCLI(t, "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, "notes", "AI_CHANGELOG.md")+"\n", stdout)
}
