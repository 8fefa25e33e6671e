/*
Package pixellab is a client library for the PixelLab pixel art
generation service.

It pairs the API client with an optional sqlite backed result cache:
single image generation requests are keyed by a digest of their
serialized body, and identical requests are served locally instead of
being billed again. Animation responses are never cached since their
frames are meant to be post-processed into spritesheets anyway.
*/
package pixellab

import "log"

// PixelLab ties together the API client and the optional local result
// cache.
type PixelLab struct {
	client *Client
	cache  *Cache
	logger *log.Logger
}

// New returns a PixelLab handle. cache may be nil to disable caching.
func New(client *Client, cache *Cache, logger *log.Logger) *PixelLab {
	return &PixelLab{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

func (p *PixelLab) cached(endpoint string, req interface{}, call func() (*ImageResponse, error)) ([]byte, float64, error) {
	key, err := Key(endpoint, req)
	if err != nil {
		return nil, 0, err
	}

	if p.cache != nil {
		b, err := p.cache.Get(key)
		if err != nil {
			return nil, 0, err
		}
		if b != nil {
			p.logger.Printf("cache hit for %s\n", endpoint)
			return b, 0, nil
		}
	}

	resp, err := call()
	if err != nil {
		return nil, 0, err
	}

	b, err := resp.Image.Bytes()
	if err != nil {
		return nil, 0, err
	}

	if p.cache != nil {
		if err := p.cache.Put(key, b); err != nil {
			return nil, 0, err
		}
	}

	return b, resp.Usage.USD, nil
}

func frames(resp *AnimationResponse) ([][]byte, float64, error) {
	out := make([][]byte, len(resp.Images))
	for i := range resp.Images {
		b, err := resp.Images[i].Bytes()
		if err != nil {
			return nil, 0, err
		}
		out[i] = b
	}
	return out, resp.Usage.USD, nil
}

// Balance returns the remaining account credit in USD.
func (p *PixelLab) Balance() (float64, error) {
	return p.client.Balance()
}

// GeneratePixflux generates pixel art from a text description and
// returns the PNG bytes and the cost in USD. Cache hits cost nothing.
func (p *PixelLab) GeneratePixflux(req *GeneratePixfluxRequest) ([]byte, float64, error) {
	return p.cached("/generate-image-pixflux", req, func() (*ImageResponse, error) {
		return p.client.GeneratePixflux(req)
	})
}

// GenerateBitforge generates style guided pixel art and returns the
// PNG bytes and the cost in USD.
func (p *PixelLab) GenerateBitforge(req *GenerateBitforgeRequest) ([]byte, float64, error) {
	return p.cached("/generate-image-bitforge", req, func() (*ImageResponse, error) {
		return p.client.GenerateBitforge(req)
	})
}

// Rotate renders a character from a different view or direction and
// returns the PNG bytes and the cost in USD.
func (p *PixelLab) Rotate(req *RotateRequest) ([]byte, float64, error) {
	return p.cached("/rotate", req, func() (*ImageResponse, error) {
		return p.client.Rotate(req)
	})
}

// Inpaint regenerates the masked region of an image and returns the
// PNG bytes and the cost in USD.
func (p *PixelLab) Inpaint(req *InpaintRequest) ([]byte, float64, error) {
	return p.cached("/inpaint", req, func() (*ImageResponse, error) {
		return p.client.Inpaint(req)
	})
}

// AnimateWithSkeleton animates a character along skeleton keyframes
// and returns the frame PNGs and the cost in USD.
func (p *PixelLab) AnimateWithSkeleton(req *AnimateWithSkeletonRequest) ([][]byte, float64, error) {
	resp, err := p.client.AnimateWithSkeleton(req)
	if err != nil {
		return nil, 0, err
	}
	return frames(resp)
}

// AnimateWithText animates a character from a textual action and
// returns the frame PNGs and the cost in USD.
func (p *PixelLab) AnimateWithText(req *AnimateWithTextRequest) ([][]byte, float64, error) {
	resp, err := p.client.AnimateWithText(req)
	if err != nil {
		return nil, 0, err
	}
	return frames(resp)
}

// EstimateSkeleton extracts skeleton keypoints from a character image.
func (p *PixelLab) EstimateSkeleton(req *EstimateSkeletonRequest) (*SkeletonResponse, error) {
	return p.client.EstimateSkeleton(req)
}
