package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/svc/content"
)

func TestEncodeResult(t *testing.T) {
	t.Parallel()

	article := content.Article{ID: "a1", Title: "Title", Body: "full body"}

	t.Run("granted", func(t *testing.T) {
		t.Parallel()
		resp := content.EncodeResult(content.GrantedResult(article))
		require.NotNil(t, resp.Content)
		assert.False(t, resp.Error)
		assert.False(t, resp.IsFreePreview)
		assert.Empty(t, resp.Message)
	})

	t.Run("preview", func(t *testing.T) {
		t.Parallel()
		resp := content.EncodeResult(content.PreviewResult(article, "members only"))
		require.NotNil(t, resp.Content)
		assert.True(t, resp.Error)
		assert.True(t, resp.IsFreePreview)
		assert.Equal(t, "members only", resp.Message)
	})

	t.Run("denied", func(t *testing.T) {
		t.Parallel()
		resp := content.EncodeResult(content.DeniedResult("members only"))
		assert.Nil(t, resp.Content)
		assert.True(t, resp.Error)
		assert.False(t, resp.IsFreePreview)
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	article := content.Article{ID: "a1", Body: "excerpt"}

	t.Run("content plus error is always a preview", func(t *testing.T) {
		t.Parallel()
		result, err := content.Classify(content.FetchResponse{
			Content: &article,
			Error:   true,
			Message: "members only",
		})
		require.NoError(t, err)
		assert.Equal(t, content.KindPreview, result.Kind())
		assert.Equal(t, "members only", result.Reason())
	})

	t.Run("content plus error without preview flag is still a preview", func(t *testing.T) {
		t.Parallel()
		result, err := content.Classify(content.FetchResponse{
			Content:       &article,
			Error:         true,
			IsFreePreview: false,
		})
		require.NoError(t, err)
		assert.Equal(t, content.KindPreview, result.Kind())
	})

	t.Run("error without content is a hard failure", func(t *testing.T) {
		t.Parallel()
		_, err := content.Classify(content.FetchResponse{Error: true, Message: "not found"})
		assert.Error(t, err)
	})

	t.Run("content without error is granted", func(t *testing.T) {
		t.Parallel()
		result, err := content.Classify(content.FetchResponse{Content: &article})
		require.NoError(t, err)
		assert.Equal(t, content.KindGranted, result.Kind())
	})

	t.Run("empty envelope is malformed", func(t *testing.T) {
		t.Parallel()
		_, err := content.Classify(content.FetchResponse{})
		assert.ErrorIs(t, err, content.ErrMalformedResponse)
	})
}

func TestClassify_RoundTrip(t *testing.T) {
	t.Parallel()

	article := content.Article{ID: "a1", Body: "excerpt"}
	for _, result := range []content.Result{
		content.GrantedResult(article),
		content.PreviewResult(article, "members only"),
	} {
		back, err := content.Classify(content.EncodeResult(result))
		require.NoError(t, err)
		assert.Equal(t, result.Kind(), back.Kind())
	}
}
