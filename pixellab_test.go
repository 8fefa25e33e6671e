package pixellab

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePixfluxCached(t *testing.T) {
	calls := 0
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(&ImageResponse{
			Image: *NewImage([]byte("png bytes")),
			Usage: Usage{USD: 0.01},
		})
	}))
	defer ts.Close()

	cache, cleanup := testCache(t)
	defer cleanup()

	p := New(c, cache, log.New(ioutil.Discard, "", 0))

	req := &GeneratePixfluxRequest{
		Description: "a knight",
		ImageSize:   Size{Width: 64, Height: 64},
	}

	b, cost, err := p.GeneratePixflux(req)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), b)
	assert.Equal(t, 0.01, cost)
	assert.Equal(t, 1, calls)

	// An identical request is served locally and costs nothing.
	b, cost, err = p.GeneratePixflux(req)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), b)
	assert.Equal(t, 0.0, cost)
	assert.Equal(t, 1, calls)

	// A different request goes back to the service.
	req.Description = "a wizard"
	_, _, err = p.GeneratePixflux(req)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGeneratePixfluxNoCache(t *testing.T) {
	calls := 0
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(&ImageResponse{
			Image: *NewImage([]byte("png bytes")),
			Usage: Usage{USD: 0.01},
		})
	}))
	defer ts.Close()

	p := New(c, nil, log.New(ioutil.Discard, "", 0))

	req := &GeneratePixfluxRequest{
		Description: "a knight",
		ImageSize:   Size{Width: 64, Height: 64},
	}

	for i := 0; i < 2; i++ {
		b, cost, err := p.GeneratePixflux(req)
		require.NoError(t, err)
		assert.Equal(t, []byte("png bytes"), b)
		assert.Equal(t, 0.01, cost)
	}
	assert.Equal(t, 2, calls)
}

func TestAnimateWithTextFrames(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/animate-with-text", r.URL.Path)
		json.NewEncoder(w).Encode(&AnimationResponse{
			Images: []Image{*NewImage([]byte("frame 0")), *NewImage([]byte("frame 1"))},
			Usage:  Usage{USD: 0.04},
		})
	}))
	defer ts.Close()

	p := New(c, nil, log.New(ioutil.Discard, "", 0))

	frames, cost, err := p.AnimateWithText(&AnimateWithTextRequest{
		ImageSize:      Size{Width: 64, Height: 64},
		Description:    "a knight",
		Action:         "walk",
		ReferenceImage: NewImage([]byte("ref")),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.04, cost)
	require.Len(t, frames, 2)
	assert.Equal(t, []byte("frame 0"), frames[0])
	assert.Equal(t, []byte("frame 1"), frames[1])
}
