package selfupdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetName(t *testing.T) {
	custom := Source{Binary: "survey", AssetTemplate: "{binary}-{os}-{arch}.{ext}"}

	tests := []struct {
		name     string
		src      Source
		platform Platform
		want     string
	}{
		{"linux amd64", DefaultSource(), Platform{"linux", "amd64"}, "intake_Linux_x86_64.tar.gz"},
		{"linux arm64", DefaultSource(), Platform{"linux", "arm64"}, "intake_Linux_arm64.tar.gz"},
		{"windows 386", DefaultSource(), Platform{"windows", "386"}, "intake_Windows_i386.zip"},
		{"darwin is universal", DefaultSource(), Platform{"darwin", "arm64"}, "intake_Darwin_all.tar.gz"},
		{"custom template", custom, Platform{"linux", "amd64"}, "survey-Linux-x86_64.tar.gz"},
		{"custom template windows", custom, Platform{"windows", "amd64"}, "survey-Windows-x86_64.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.AssetName(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssetNameUnsupported(t *testing.T) {
	_, err := DefaultSource().AssetName(Platform{"plan9", "amd64"})
	assert.ErrorContains(t, err, "plan9")

	_, err = DefaultSource().AssetName(Platform{"linux", "riscv64"})
	assert.ErrorContains(t, err, "riscv64")
}

func TestSourceValidate(t *testing.T) {
	require.NoError(t, DefaultSource().Validate())

	tests := []struct {
		name string
		edit func(*Source)
		want string
	}{
		{"no owner", func(s *Source) { s.Owner = "" }, "owner and repo"},
		{"no repo", func(s *Source) { s.Repo = "" }, "owner and repo"},
		{"no binary", func(s *Source) { s.Binary = "" }, "binary"},
		{"template without ext", func(s *Source) { s.AssetTemplate = "{binary}_{os}" }, "{ext}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := DefaultSource()
			tt.edit(&src)
			assert.ErrorContains(t, src.Validate(), tt.want)
		})
	}
}

func TestWithSourceKeepsDefaults(t *testing.T) {
	c := NewChecker(WithSource(Source{
		Owner:  "acme",
		Repo:   "onboarding",
		APIURL: "https://ghe.acme.test/api/v3/",
	}))

	src := c.Source()
	assert.Equal(t, "acme", src.Owner)
	assert.Equal(t, "onboarding", src.Repo)
	assert.Equal(t, "https://ghe.acme.test/api/v3", src.APIURL)
	assert.Equal(t, "intake", src.Binary)
	assert.Equal(t, DefaultSource().AssetTemplate, src.AssetTemplate)
	assert.Equal(t, "https://github.com", src.DownloadURL)
}
