package validators

import (
	"strings"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateCreatePost(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.CreatePostRequest{Content: "body"})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())

	err = v.Validate(&models.CreatePostRequest{Title: "t"})
	require.Error(t, err)
	assert.Equal(t, "content is required", err.Error())

	assert.NoError(t, v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", Tags: []string{"go"}}))
}

func TestValidateCommentLength(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CreateCommentRequest{Content: strings.Repeat("a", 1000)}))

	err := v.Validate(&models.CreateCommentRequest{Content: strings.Repeat("a", 1001)})
	require.Error(t, err)
	assert.Equal(t, "content must be at most 1000 characters", err.Error())
}

func TestValidateUpdatePostPointers(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.UpdatePostRequest{}))
	assert.NoError(t, v.Validate(&models.UpdatePostRequest{CoverImage: strPtr("")}))

	err := v.Validate(&models.UpdatePostRequest{Title: strPtr("")})
	require.Error(t, err)
	assert.Equal(t, "title must be at least 1 characters", err.Error())

	err = v.Validate(&models.UpdatePostRequest{CoverImage: strPtr("not a url")})
	require.Error(t, err)
	assert.Equal(t, "coverImage must be a valid URL", err.Error())

	assert.NoError(t, v.Validate(&models.UpdatePostRequest{CoverImage: strPtr("https://img.example.com/a.png")}))
}

func TestValidateProfileImage(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.UpdateProfileRequest{Image: strPtr("")}))
	assert.NoError(t, v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", CoverImage: strPtr("")}))

	err := v.Validate(&models.UpdateProfileRequest{Image: strPtr("not a url")})
	require.Error(t, err)
	assert.Equal(t, "image must be a valid URL", err.Error())
}
