package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/model"
)

const sampleStyles = `
styles:
  deploy:
    background: "#2E7D32"
    text: "#fafafa"
    font:
      family: Inter
      size: 16
      weight: bold
    icon: emblem-ok-symbolic
    icon_alignment: right
    text_alignment: center
    width:
      screen: 0.5
  quiet:
    background: "333333"
    icon: ""
    width:
      fixed: 320
`

func TestParseStyles(t *testing.T) {
	styles, err := ParseStyles([]byte(sampleStyles))
	require.NoError(t, err)
	require.Len(t, styles, 2)
	assert.Equal(t, []string{"deploy", "quiet"}, styles.Names())

	deploy := styles["deploy"]
	assert.Equal(t, "#2e7d32", deploy.Background)
	assert.Equal(t, "#fafafa", deploy.Text)
	assert.Equal(t, model.DefaultForeground, deploy.Tint)
	assert.Equal(t, model.Font{Family: "Inter", Size: 16, Weight: "bold"}, deploy.Font)
	assert.Equal(t, model.IconSuccess, deploy.Icon)
	assert.Equal(t, model.IconRight, deploy.IconAlignment)
	assert.Equal(t, model.TextAlignCenter, deploy.TextAlignment)
	assert.True(t, deploy.Width.IsScreenRelative())
	assert.Equal(t, 960.0, deploy.Width.Resolve(1920))

	quiet := styles["quiet"]
	assert.Equal(t, "#333333", quiet.Background)
	assert.Empty(t, quiet.Icon)
	assert.Equal(t, 320.0, quiet.Width.Resolve(1920))
	assert.Equal(t, model.DefaultFontSize, quiet.Font.Size)
}

func TestParseStyles_DefaultIcon(t *testing.T) {
	styles, err := ParseStyles([]byte("styles:\n  plain:\n    background: '#101010'\n"))
	require.NoError(t, err)
	assert.Equal(t, model.IconInfo, styles["plain"].Icon)
	assert.Equal(t, model.DefaultWidth, styles["plain"].Width.Resolve(0))
}

func TestParseStyles_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "ratio above one",
			input:   "styles:\n  big:\n    background: '#000'\n    width: {screen: 1.5}\n",
			wantErr: model.ErrInvalidScreenRatio,
		},
		{
			name:    "negative ratio",
			input:   "styles:\n  neg:\n    background: '#000'\n    width: {screen: -0.2}\n",
			wantErr: model.ErrInvalidScreenRatio,
		},
		{
			name:    "negative fixed width",
			input:   "styles:\n  neg:\n    background: '#000'\n    width: {fixed: -10}\n",
			wantErr: model.ErrInvalidWidth,
		},
		{
			name:    "ratio not a number",
			input:   "styles:\n  nan:\n    background: '#000'\n    width: {screen: .nan}\n",
			wantErr: model.ErrInvalidScreenRatio,
		},
		{
			name:    "infinite fixed width",
			input:   "styles:\n  inf:\n    background: '#000'\n    width: {fixed: .inf}\n",
			wantErr: model.ErrInvalidWidth,
		},
		{
			name:    "fixed width not a number",
			input:   "styles:\n  nan:\n    background: '#000'\n    width: {fixed: .nan}\n",
			wantErr: model.ErrInvalidWidth,
		},
		{
			name:    "both widths",
			input:   "styles:\n  both:\n    background: '#000'\n    width: {fixed: 100, screen: 0.5}\n",
			wantMsg: "not both",
		},
		{
			name:    "bad color",
			input:   "styles:\n  bad:\n    background: 'green-ish'\n",
			wantErr: model.ErrInvalidColor,
		},
		{
			name:    "missing background",
			input:   "styles:\n  none:\n    text: '#fff'\n",
			wantMsg: "background is required",
		},
		{
			name:    "reserved name",
			input:   "styles:\n  success:\n    background: '#000'\n",
			wantMsg: "reserved",
		},
		{
			name:    "bad alignment",
			input:   "styles:\n  x:\n    background: '#000'\n    icon_alignment: top\n",
			wantMsg: "icon alignment",
		},
		{
			name:    "not yaml",
			input:   "styles: [",
			wantMsg: "failed to parse styles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStyles([]byte(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadStyles(t *testing.T) {
	styles, err := LoadStyles(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, styles)

	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleStyles), 0644))

	styles, err = LoadStyles(path)
	require.NoError(t, err)
	assert.Len(t, styles, 2)
}

func TestStyles_State(t *testing.T) {
	styles, err := ParseStyles([]byte(sampleStyles))
	require.NoError(t, err)

	st, err := styles.State("warning")
	require.NoError(t, err)
	assert.Equal(t, model.StateWarning, st)

	st, err = styles.State("deploy")
	require.NoError(t, err)
	custom, ok := st.(model.CustomState)
	require.True(t, ok)
	assert.Equal(t, "deploy", custom.Preset)
	assert.Equal(t, "#2e7d32", custom.Style().Background)

	_, err = styles.State("nope")
	assert.ErrorContains(t, err, "unknown state")
}

func TestStyles_MarshalRoundTrip(t *testing.T) {
	styles, err := ParseStyles([]byte(sampleStyles))
	require.NoError(t, err)

	data, err := styles.Marshal()
	require.NoError(t, err)

	again, err := ParseStyles(data)
	require.NoError(t, err)
	assert.Equal(t, styles, again)
}
