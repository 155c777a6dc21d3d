package storage

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"clubmedia/internal/model"
)

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		folder   model.Folder
		pattern  string
	}{
		{
			name:     "video with extension",
			fileName: "goal.mp4",
			folder:   model.FolderHighlights,
			pattern:  `^highlights/\d{13}-[a-z0-9]{12}\.mp4$`,
		},
		{
			name:     "photo with multiple dots",
			fileName: "team.photo.final.jpg",
			folder:   model.FolderTeamImages,
			pattern:  `^team-images/\d{13}-[a-z0-9]{12}\.jpg$`,
		},
		{
			name:     "no extension keeps trailing dot",
			fileName: "README",
			folder:   model.FolderProfilePics,
			pattern:  `^profile-pics/\d{13}-[a-z0-9]{12}\.$`,
		},
		{
			name:     "empty filename",
			fileName: "",
			folder:   model.FolderHighlights,
			pattern:  `^highlights/\d{13}-[a-z0-9]{12}\.$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateKey(tt.fileName, tt.folder)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), key)
		})
	}
}

func TestGenerateKeyDistinct(t *testing.T) {
	// Two keys generated back to back must differ even within the same millisecond.
	a := GenerateKey("clip.mp4", model.FolderHighlights)
	b := GenerateKey("clip.mp4", model.FolderHighlights)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "highlights/"))
}
