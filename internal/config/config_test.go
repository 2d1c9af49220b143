package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolate points every config source at an empty temp dir.
func isolate(t *testing.T) LoadOptions {
	t.Helper()
	dir := t.TempDir()
	return LoadOptions{
		UserConfigPath:    filepath.Join(dir, "user-missing.yml"),
		ProjectConfigPath: writeConfig(t, dir, "project.yml", ""),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	cfg, err := LoadWithOptions(isolate(t))
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.ChangelogDir)
	assert.Equal(t, "AI_CHANGELOG.md", cfg.ChangelogFile)
	assert.Equal(t, 5*time.Second, cfg.GitTimeout)
	assert.False(t, cfg.Plain)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	userPath := writeConfig(t, dir, "user.yml", "changelog_dir: user-docs\ngit_timeout: 2s\nchangelog_file: USER.md\n")
	projectPath := writeConfig(t, dir, "project.yml", "changelog_dir: project-docs\ngit_timeout: 3s\n")
	t.Setenv("FLIGHTLOG_GIT_TIMEOUT", "750ms")

	cfg, err := LoadWithOptions(LoadOptions{UserConfigPath: userPath, ProjectConfigPath: projectPath})
	require.NoError(t, err)

	assert.Equal(t, "project-docs", cfg.ChangelogDir, "project overrides user")
	assert.Equal(t, "USER.md", cfg.ChangelogFile, "user overrides defaults")
	assert.Equal(t, 750*time.Millisecond, cfg.GitTimeout, "env overrides project")
	assert.Equal(t, []string{userPath, projectPath}, cfg.Sources)
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeConfig(t, dir, "config.json", `{"changelog_file": "CHANGES.md", "plain": true}`)

	cfg, err := LoadWithOptions(LoadOptions{SkipUserConfig: true, ProjectConfigPath: projectPath})
	require.NoError(t, err)

	assert.Equal(t, "CHANGES.md", cfg.ChangelogFile)
	assert.True(t, cfg.Plain)
}

func TestLoad_ProjectDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ProjectConfigDir), 0o755))
	yamlPath := writeConfig(t, filepath.Join(root, ProjectConfigDir), "config.yml", "changelog_dir: notes\n")

	cfg, err := LoadWithOptions(LoadOptions{SkipUserConfig: true, ProjectDir: root})
	require.NoError(t, err)
	assert.Equal(t, "notes", cfg.ChangelogDir)
	assert.Equal(t, root, cfg.ProjectDir)
	assert.Equal(t, []string{yamlPath}, cfg.Sources)

	cfg, err = LoadWithOptions(LoadOptions{SkipUserConfig: true, SkipProjectConfig: true, ProjectDir: root})
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.ChangelogDir)
	assert.Empty(t, cfg.Sources)
}

func TestProjectConfigPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/repo", ".flightlog", "config.yml"), ProjectConfigPath("/repo"))
	assert.Equal(t, filepath.Join("/repo", ".flightlog", "config.json"), ProjectJSONConfigPath("/repo"))
	assert.Equal(t, filepath.Join(".flightlog", "config.yml"), ProjectConfigPath(""))
}

func TestLoad_NoColorForcesPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadWithOptions(isolate(t))
	require.NoError(t, err)
	assert.True(t, cfg.Plain)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		content string
		env     map[string]string
		wantMsg string
	}{
		"invalid yaml": {
			content: "changelog_dir: [unclosed\n",
			wantMsg: "validating YAML syntax",
		},
		"file name with directory": {
			content: "changelog_file: nested/LOG.md\n",
			wantMsg: "changelog_file",
		},
		"absolute changelog dir": {
			content: "changelog_dir: /var/log\n",
			wantMsg: "changelog_dir",
		},
		"changelog dir above root": {
			content: "changelog_dir: ../escaped\n",
			wantMsg: "inside the project root",
		},
		"empty changelog dir": {
			content: "changelog_dir: \"\"\n",
			wantMsg: "changelog_dir",
		},
		"non-positive timeout": {
			content: "git_timeout: 0s\n",
			wantMsg: "git_timeout",
		},
		"bad timeout from env": {
			env:     map[string]string{"FLIGHTLOG_GIT_TIMEOUT": "soon"},
			wantMsg: "unmarshal",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			projectPath := writeConfig(t, dir, "project.yml", tt.content)

			_, err := LoadWithOptions(LoadOptions{SkipUserConfig: true, ProjectConfigPath: projectPath})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MissingCustomProjectConfig(t *testing.T) {
	_, err := LoadWithOptions(LoadOptions{
		SkipUserConfig:    true,
		ProjectConfigPath: filepath.Join(t.TempDir(), "nope.yml"),
	})
	assert.ErrorContains(t, err, "config file not found")
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data    string
		wantErr bool
	}{
		"empty":         {data: "", wantErr: false},
		"valid":         {data: GetDefaultConfigTemplate(), wantErr: false},
		"unclosed flow": {data: "a: [1, 2\n", wantErr: true},
		"tab indent":    {data: "a:\n\tb: 2\n", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateYAMLSyntaxFromBytes([]byte(tt.data), "config.yml")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "config.yml", vErr.FilePath)
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "git_timeout", envTransform("FLIGHTLOG_GIT_TIMEOUT"))
	assert.Equal(t, "changelog_dir", envTransform("FLIGHTLOG_CHANGELOG_DIR"))
}
