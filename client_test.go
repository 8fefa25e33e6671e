package pixellab

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := NewClient("secret")
	c.baseURL = ts.URL
	return c, ts
}

func TestClientBalance(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/balance", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"usd": 12.5}`))
	}))
	defer ts.Close()

	usd, err := c.Balance()
	require.NoError(t, err)
	assert.Equal(t, 12.5, usd)
}

func TestClientGeneratePixflux(t *testing.T) {
	image := NewImage([]byte("fake png bytes"))

	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-image-pixflux", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GeneratePixfluxRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a knight", req.Description)
		assert.Equal(t, Size{Width: 64, Height: 64}, req.ImageSize)

		json.NewEncoder(w).Encode(&ImageResponse{
			Image: *image,
			Usage: Usage{USD: 0.01},
		})
	}))
	defer ts.Close()

	resp, err := c.GeneratePixflux(&GeneratePixfluxRequest{
		Description: "a knight",
		ImageSize:   Size{Width: 64, Height: 64},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.01, resp.Usage.USD)

	b, err := resp.Image.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), b)
}

func TestClientErrorDetail(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"detail": "insufficient credits"}`))
	}))
	defer ts.Close()

	_, err := c.Balance()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient credits")
	assert.Contains(t, err.Error(), "402")
}

func TestClientErrorOpaqueBody(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>nope</html>"))
	}))
	defer ts.Close()

	_, err := c.Balance()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestRequestOmitsUnsetFields(t *testing.T) {
	b, err := json.Marshal(&GeneratePixfluxRequest{
		Description: "a wizard",
		ImageSize:   Size{Width: 32, Height: 32},
	})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, 2)
	assert.Contains(t, m, "description")
	assert.Contains(t, m, "image_size")
}
