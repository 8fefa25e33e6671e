package pixellab

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.pixellab.ai/v1"

// Image is how images travel through the API: base64 encoded PNG bytes.
type Image struct {
	Type   string `json:"type"`
	Base64 string `json:"base64"`
}

// NewImage wraps encoded PNG bytes for use in a request body.
func NewImage(b []byte) *Image {
	return &Image{
		Type:   "base64",
		Base64: base64.StdEncoding.EncodeToString(b),
	}
}

// Bytes returns the decoded PNG bytes.
func (i *Image) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(i.Base64)
}

// Size is an image size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Usage reports what an API call cost.
type Usage struct {
	USD float64 `json:"usd"`
}

// ImageResponse is the response shape of the single image endpoints.
type ImageResponse struct {
	Image Image `json:"image"`
	Usage Usage `json:"usage"`
}

// AnimationResponse is the response shape of the animation endpoints.
type AnimationResponse struct {
	Images []Image `json:"images"`
	Usage  Usage   `json:"usage"`
}

// SkeletonResponse carries estimated skeleton keypoints. The keypoint
// structure is passed through verbatim; it is only ever fed back into
// other endpoints.
type SkeletonResponse struct {
	Keypoints json.RawMessage `json:"keypoints"`
	Usage     Usage           `json:"usage"`
}

// GeneratePixfluxRequest is the request body for text-to-pixel-art
// generation, up to 400x400.
type GeneratePixfluxRequest struct {
	Description       string  `json:"description"`
	ImageSize         Size    `json:"image_size"`
	NoBackground      bool    `json:"no_background,omitempty"`
	Isometric         bool    `json:"isometric,omitempty"`
	TextGuidanceScale float64 `json:"text_guidance_scale,omitempty"`
	Outline           string  `json:"outline,omitempty"`
	Shading           string  `json:"shading,omitempty"`
	Detail            string  `json:"detail,omitempty"`
	View              string  `json:"view,omitempty"`
	Direction         string  `json:"direction,omitempty"`
	InitImage         *Image  `json:"init_image,omitempty"`
	InitImageStrength int     `json:"init_image_strength,omitempty"`
	ColorImage        *Image  `json:"color_image,omitempty"`
	Seed              *int    `json:"seed,omitempty"`
}

// GenerateBitforgeRequest is the request body for style transfer
// generation, up to 200x200.
type GenerateBitforgeRequest struct {
	Description        string          `json:"description"`
	ImageSize          Size            `json:"image_size"`
	NoBackground       bool            `json:"no_background,omitempty"`
	Isometric          bool            `json:"isometric,omitempty"`
	ObliqueProjection  bool            `json:"oblique_projection,omitempty"`
	TextGuidanceScale  float64         `json:"text_guidance_scale,omitempty"`
	StyleStrength      float64         `json:"style_strength,omitempty"`
	CoveragePercentage float64         `json:"coverage_percentage,omitempty"`
	Outline            string          `json:"outline,omitempty"`
	Shading            string          `json:"shading,omitempty"`
	Detail             string          `json:"detail,omitempty"`
	View               string          `json:"view,omitempty"`
	Direction          string          `json:"direction,omitempty"`
	InitImage          *Image          `json:"init_image,omitempty"`
	InitImageStrength  int             `json:"init_image_strength,omitempty"`
	StyleImage         *Image          `json:"style_image,omitempty"`
	InpaintingImage    *Image          `json:"inpainting_image,omitempty"`
	MaskImage          *Image          `json:"mask_image,omitempty"`
	ColorImage         *Image          `json:"color_image,omitempty"`
	SkeletonKeypoints  json.RawMessage `json:"skeleton_keypoints,omitempty"`
	Seed               *int            `json:"seed,omitempty"`
}

// AnimateWithSkeletonRequest is the request body for skeleton driven
// animation, up to 256x256.
type AnimateWithSkeletonRequest struct {
	ImageSize         Size            `json:"image_size"`
	ReferenceImage    *Image          `json:"reference_image"`
	SkeletonKeypoints json.RawMessage `json:"skeleton_keypoints"`
	View              string          `json:"view,omitempty"`
	Direction         string          `json:"direction,omitempty"`
	Isometric         bool            `json:"isometric,omitempty"`
	ObliqueProjection bool            `json:"oblique_projection,omitempty"`
	GuidanceScale     float64         `json:"guidance_scale,omitempty"`
	InitImages        []*Image        `json:"init_images,omitempty"`
	InitImageStrength int             `json:"init_image_strength,omitempty"`
	ColorImage        *Image          `json:"color_image,omitempty"`
	Seed              *int            `json:"seed,omitempty"`
}

// AnimateWithTextRequest is the request body for text guided
// animation. The service only supports 64x64 frames here.
type AnimateWithTextRequest struct {
	ImageSize          Size     `json:"image_size"`
	Description        string   `json:"description"`
	Action             string   `json:"action"`
	ReferenceImage     *Image   `json:"reference_image"`
	View               string   `json:"view,omitempty"`
	Direction          string   `json:"direction,omitempty"`
	NFrames            int      `json:"n_frames,omitempty"`
	StartFrameIndex    int      `json:"start_frame_index,omitempty"`
	TextGuidanceScale  float64  `json:"text_guidance_scale,omitempty"`
	ImageGuidanceScale float64  `json:"image_guidance_scale,omitempty"`
	InitImages         []*Image `json:"init_images,omitempty"`
	InitImageStrength  int      `json:"init_image_strength,omitempty"`
	ColorImage         *Image   `json:"color_image,omitempty"`
	Seed               *int     `json:"seed,omitempty"`
}

// RotateRequest is the request body for rotating a character between
// views and directions, up to 200x200.
type RotateRequest struct {
	ImageSize          Size    `json:"image_size"`
	FromImage          *Image  `json:"from_image"`
	FromView           string  `json:"from_view,omitempty"`
	ToView             string  `json:"to_view,omitempty"`
	FromDirection      string  `json:"from_direction,omitempty"`
	ToDirection        string  `json:"to_direction,omitempty"`
	ViewChange         *int    `json:"view_change,omitempty"`
	DirectionChange    *int    `json:"direction_change,omitempty"`
	Isometric          bool    `json:"isometric,omitempty"`
	ObliqueProjection  bool    `json:"oblique_projection,omitempty"`
	ImageGuidanceScale float64 `json:"image_guidance_scale,omitempty"`
	InitImage          *Image  `json:"init_image,omitempty"`
	InitImageStrength  int     `json:"init_image_strength,omitempty"`
	MaskImage          *Image  `json:"mask_image,omitempty"`
	ColorImage         *Image  `json:"color_image,omitempty"`
	Seed               *int    `json:"seed,omitempty"`
}

// InpaintRequest is the request body for regenerating the masked
// region of an existing image, up to 200x200.
type InpaintRequest struct {
	Description       string  `json:"description"`
	ImageSize         Size    `json:"image_size"`
	InpaintingImage   *Image  `json:"inpainting_image"`
	MaskImage         *Image  `json:"mask_image"`
	NoBackground      bool    `json:"no_background,omitempty"`
	Isometric         bool    `json:"isometric,omitempty"`
	ObliqueProjection bool    `json:"oblique_projection,omitempty"`
	TextGuidanceScale float64 `json:"text_guidance_scale,omitempty"`
	Outline           string  `json:"outline,omitempty"`
	Shading           string  `json:"shading,omitempty"`
	Detail            string  `json:"detail,omitempty"`
	View              string  `json:"view,omitempty"`
	Direction         string  `json:"direction,omitempty"`
	InitImage         *Image  `json:"init_image,omitempty"`
	InitImageStrength int     `json:"init_image_strength,omitempty"`
	ColorImage        *Image  `json:"color_image,omitempty"`
	Seed              *int    `json:"seed,omitempty"`
}

// EstimateSkeletonRequest is the request body for extracting skeleton
// keypoints from a character image.
type EstimateSkeletonRequest struct {
	Image *Image `json:"image"`
}

// Client is a PixelLab API client.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient returns a Client authenticating with the given API token.
func NewClient(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type apiError struct {
	Detail string `json:"detail"`
}

func (c *Client) do(method, endpoint string, body, out interface{}) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, r)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var e apiError
		if json.Unmarshal(b, &e) == nil && e.Detail != "" {
			return fmt.Errorf("pixellab: HTTP %d: %s", resp.StatusCode, e.Detail)
		}
		return fmt.Errorf("pixellab: %s", resp.Status)
	}

	return json.Unmarshal(b, out)
}

// Balance returns the remaining account credit in USD.
func (c *Client) Balance() (float64, error) {
	var resp struct {
		USD float64 `json:"usd"`
	}
	if err := c.do(http.MethodGet, "/balance", nil, &resp); err != nil {
		return 0, err
	}
	return resp.USD, nil
}

// GeneratePixflux generates pixel art from a text description.
func (c *Client) GeneratePixflux(req *GeneratePixfluxRequest) (*ImageResponse, error) {
	resp := new(ImageResponse)
	if err := c.do(http.MethodPost, "/generate-image-pixflux", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateBitforge generates pixel art guided by a style image.
func (c *Client) GenerateBitforge(req *GenerateBitforgeRequest) (*ImageResponse, error) {
	resp := new(ImageResponse)
	if err := c.do(http.MethodPost, "/generate-image-bitforge", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AnimateWithSkeleton animates a character along the given skeleton
// keyframes.
func (c *Client) AnimateWithSkeleton(req *AnimateWithSkeletonRequest) (*AnimationResponse, error) {
	resp := new(AnimationResponse)
	if err := c.do(http.MethodPost, "/animate-with-skeleton", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AnimateWithText animates a character from a textual action.
func (c *Client) AnimateWithText(req *AnimateWithTextRequest) (*AnimationResponse, error) {
	resp := new(AnimationResponse)
	if err := c.do(http.MethodPost, "/animate-with-text", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Rotate renders a character from a different view or direction.
func (c *Client) Rotate(req *RotateRequest) (*ImageResponse, error) {
	resp := new(ImageResponse)
	if err := c.do(http.MethodPost, "/rotate", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Inpaint regenerates the masked region of an image.
func (c *Client) Inpaint(req *InpaintRequest) (*ImageResponse, error) {
	resp := new(ImageResponse)
	if err := c.do(http.MethodPost, "/inpaint", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// EstimateSkeleton extracts skeleton keypoints from a character image.
func (c *Client) EstimateSkeleton(req *EstimateSkeletonRequest) (*SkeletonResponse, error) {
	resp := new(SkeletonResponse)
	if err := c.do(http.MethodPost, "/estimate-skeleton", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
