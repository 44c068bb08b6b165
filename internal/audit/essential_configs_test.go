package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, dir string, names ...string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	for _, n := range names {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestEssentialConfigFilesReportsEachMissingFile(t *testing.T) {
	subsets := [][]string{
		{},
		{"eslint.config.js"},
		{"tsconfig.json", "OWNERS"},
		{"eslint.config.js", "tsconfig.json", "OWNERS"},
	}
	for _, present := range subsets {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, "/repo/pkg", present...)

		issues, err := EssentialConfigFiles(fs).Fn(context.Background(), Project{Folder: "/repo/pkg"}, RuleConfig{})
		require.NoError(t, err)
		assert.Len(t, issues, 3-len(present), "present: %v", present)
	}
}

func TestEssentialConfigFilesMessageAndOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/repo/pkg", "tsconfig.json")

	issues, err := EssentialConfigFiles(fs).Fn(context.Background(), Project{Folder: "/repo/pkg"}, RuleConfig{})
	require.NoError(t, err)

	assert.Equal(t, []Issue{
		{Rule: EssentialConfigRuleName, Content: "`eslint.config.js` does not exist, please add it to your package."},
		{Rule: EssentialConfigRuleName, Content: "`OWNERS` does not exist, please add it to your package."},
	}, issues)
}

func TestEssentialConfigFilesOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/repo/pkg", "README.md")

	cfg := RuleConfig{EssentialFiles: []string{"README.md", "config/.env.example", "README.md"}}
	issues, err := EssentialConfigFiles(fs).Fn(context.Background(), Project{Folder: "/repo/pkg"}, cfg)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "`.env.example` does not exist, please add it to your package.", issues[0].Content)
}

func TestRunGroupsIssuesPerProject(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/repo/a", DefaultEssentialFiles...)
	writeFiles(t, fs, "/repo/b", "OWNERS")

	report := Run(context.Background(),
		[]Project{{Folder: "/repo/a"}, {Folder: "/repo/b"}},
		[]Rule{EssentialConfigFiles(fs)},
		RuleConfig{})

	require.Len(t, report.Projects, 2)
	assert.Equal(t, "a", report.Projects[0].Project.Name)
	assert.Empty(t, report.Projects[0].Issues)
	assert.Len(t, report.Projects[1].Issues, 2)
	assert.Equal(t, 2, report.IssueCount())
	assert.False(t, report.HasErrors())
}

func TestRunRecordsRuleErrors(t *testing.T) {
	failing := Rule{
		Name: "broken",
		Fn: func(context.Context, Project, RuleConfig) ([]Issue, error) {
			return nil, assert.AnError
		},
	}
	report := Run(context.Background(), []Project{{Name: "x", Folder: "/x"}}, []Rule{failing}, RuleConfig{})

	assert.True(t, report.HasErrors())
	assert.ErrorIs(t, report.Projects[0].Errors[0], assert.AnError)
	assert.Zero(t, report.IssueCount())
}

func TestDiscoverProjects(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/repo", "package.json")
	writeFiles(t, fs, "/repo/packages/web", "package.json")
	writeFiles(t, fs, "/repo/packages/api", "package.json")
	writeFiles(t, fs, "/repo/packages/web/node_modules/dep", "package.json")
	writeFiles(t, fs, "/repo/docs", "README.md")
	writeFiles(t, fs, "/repo/_examples/demo", "package.json")
	writeFiles(t, fs, "/repo/dist/bundle", "package.json")

	projects, err := DiscoverProjects(fs, "/repo", "")
	require.NoError(t, err)

	assert.Equal(t, []Project{
		{Name: "demo", Folder: "/repo/_examples/demo"},
		{Name: "api", Folder: "/repo/packages/api"},
		{Name: "web", Folder: "/repo/packages/web"},
	}, projects)
}
