package scaffold

import (
	"errors"
	"kbsite/internal/builder"
	"kbsite/internal/config"
	"kbsite/internal/records"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCreateSite_BuildsWithoutPlaceholders(t *testing.T) {
	dir := t.TempDir()
	created, err := CreateSite(dir)
	require.NoError(t, err)
	assert.Contains(t, created, config.DefaultFile)
	assert.Contains(t, created, "schemas/services/consulting.yaml")

	cfg, err := config.Load("", dir, nil)
	require.NoError(t, err)

	report, err := builder.Build(builder.Options{
		Site:   cfg,
		Logger: zaptest.NewLogger(t),
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	for _, p := range report.Pages {
		assert.False(t, p.Placeholder, p.Name)
	}

	about, err := os.ReadFile(filepath.Join(dir, "about.html"))
	require.NoError(t, err)
	assert.Contains(t, string(about), "Example Firm")
	assert.Contains(t, string(about), "5.0 ★★★★★")
}

func TestCreateSite_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas", "faqs", "general.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

	_, err := CreateSite(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(b))
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultFile))
}

func TestNewRecord(t *testing.T) {
	dir := t.TempDir()

	path, err := NewRecord(dir, records.Services, `Estate "Planning"`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schemas", "services", "estate-planning.yaml"), path)

	recs, err := records.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, `Estate "Planning"`, recs[0].First("title"))

	_, err = NewRecord(dir, records.Services, `Estate "Planning"`)
	assert.True(t, errors.Is(err, ErrExists))

	help, err := NewRecord(dir, records.Help, "Billing")
	require.NoError(t, err)
	assert.Equal(t, ".md", filepath.Ext(help))

	_, err = NewRecord(dir, records.Organization, "Acme")
	assert.Error(t, err)
}
