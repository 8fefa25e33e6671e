package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/pixellab-tools/pixellab"
	"github.com/pixellab-tools/pixellab/palette"
	"github.com/pixellab-tools/pixellab/png"
	"github.com/pixellab-tools/pixellab/sprite"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

type result struct {
	Success     bool     `json:"success"`
	OutputFiles []string `json:"output_files"`
	CostUSD     float64  `json:"cost_usd"`
}

func report(files []string, cost float64) error {
	if files == nil {
		files = []string{}
	}
	b, err := json.Marshal(result{
		Success:     true,
		OutputFiles: files,
		CostUSD:     cost,
	})
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func newPixelLab(c *cli.Context) (*pixellab.PixelLab, func(), error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	client := pixellab.NewClient(c.String("api-key"))

	var cache *pixellab.Cache
	cleanup := func() {}
	if file := c.String("cache"); file != "" {
		var err error
		if cache, err = pixellab.NewCache(file); err != nil {
			return nil, nil, err
		}
		cleanup = func() { cache.Close() }
	}

	return pixellab.New(client, cache, logger), cleanup, nil
}

func loadImage(path string) (*pixellab.Image, error) {
	if path == "" {
		return nil, nil
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pixellab.NewImage(b), nil
}

func loadImages(paths []string) ([]*pixellab.Image, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	images := make([]*pixellab.Image, len(paths))
	for i, path := range paths {
		m, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		images[i] = m
	}
	return images, nil
}

func loadKeypoints(path string) (json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}
	return json.RawMessage(b), nil
}

func seed(c *cli.Context) *int {
	if !c.IsSet("seed") {
		return nil
	}
	s := c.Int("seed")
	return &s
}

// writeFrames writes each frame as base_0.png, base_1.png and so on,
// optionally followed by base_spritesheet.png combining them all.
func writeFrames(base string, frames [][]byte, spritesheet bool) ([]string, error) {
	base = strings.TrimSuffix(base, ".png")

	var files []string
	for i, frame := range frames {
		file := fmt.Sprintf("%s_%d.png", base, i)
		if err := ioutil.WriteFile(file, frame, 0644); err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if spritesheet {
		sheet, err := sprite.Compose(frames)
		if err != nil {
			return nil, err
		}
		if sheet != nil {
			file := base + "_spritesheet.png"
			if err := ioutil.WriteFile(file, sheet, 0644); err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}

	return files, nil
}

func sizeFlags(width, height int) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Value: width,
			Usage: "image width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: height,
			Usage: "image height in pixels",
		},
	}
}

func styleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "outline",
			Usage: "outline style",
		},
		&cli.StringFlag{
			Name:  "shading",
			Usage: "shading style",
		},
		&cli.StringFlag{
			Name:  "detail",
			Usage: "detail level",
		},
		&cli.StringFlag{
			Name:  "view",
			Usage: "camera view angle",
		},
		&cli.StringFlag{
			Name:  "direction",
			Usage: "subject facing direction",
		},
	}
}

func initImageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "init-image",
			Usage: "path to initial image",
		},
		&cli.IntFlag{
			Name:  "init-image-strength",
			Value: 300,
			Usage: "strength of the initial image (1-999)",
		},
	}
}

func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "color-image",
			Usage: "path to color palette image",
		},
		&cli.IntFlag{
			Name:  "seed",
			Usage: "random seed for reproducibility",
		},
	}
	return append(flags, extra...)
}

func balanceAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	usd, err := p.Balance()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	b, err := json.Marshal(struct {
		Success    bool    `json:"success"`
		BalanceUSD float64 `json:"balance_usd"`
	}{true, usd})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Println(string(b))

	return nil
}

func generateAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.GeneratePixfluxRequest{
		Description:       c.String("description"),
		ImageSize:         pixellab.Size{Width: c.Int("width"), Height: c.Int("height")},
		NoBackground:      c.Bool("no-background"),
		Isometric:         c.Bool("isometric"),
		TextGuidanceScale: c.Float64("text-guidance-scale"),
		Outline:           c.String("outline"),
		Shading:           c.String("shading"),
		Detail:            c.String("detail"),
		View:              c.String("view"),
		Direction:         c.String("direction"),
		InitImageStrength: c.Int("init-image-strength"),
		Seed:              seed(c),
	}
	if req.InitImage, err = loadImage(c.String("init-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.ColorImage, err = loadImage(c.String("color-image")); err != nil {
		return cli.NewExitError(err, 1)
	}

	b, cost, err := p.GeneratePixflux(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	file := c.String("output")
	if err := ioutil.WriteFile(file, b, 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return report([]string{file}, cost)
}

func bitforgeAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.GenerateBitforgeRequest{
		Description:        c.String("description"),
		ImageSize:          pixellab.Size{Width: c.Int("width"), Height: c.Int("height")},
		NoBackground:       c.Bool("no-background"),
		Isometric:          c.Bool("isometric"),
		ObliqueProjection:  c.Bool("oblique-projection"),
		TextGuidanceScale:  c.Float64("text-guidance-scale"),
		StyleStrength:      c.Float64("style-strength"),
		CoveragePercentage: c.Float64("coverage-percentage"),
		Outline:            c.String("outline"),
		Shading:            c.String("shading"),
		Detail:             c.String("detail"),
		View:               c.String("view"),
		Direction:          c.String("direction"),
		InitImageStrength:  c.Int("init-image-strength"),
		Seed:               seed(c),
	}
	for _, img := range []struct {
		flag string
		dst  **pixellab.Image
	}{
		{"init-image", &req.InitImage},
		{"style-image", &req.StyleImage},
		{"inpainting-image", &req.InpaintingImage},
		{"mask-image", &req.MaskImage},
		{"color-image", &req.ColorImage},
	} {
		if *img.dst, err = loadImage(c.String(img.flag)); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	if req.SkeletonKeypoints, err = loadKeypoints(c.String("skeleton-keypoints")); err != nil {
		return cli.NewExitError(err, 1)
	}

	b, cost, err := p.GenerateBitforge(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	file := c.String("output")
	if err := ioutil.WriteFile(file, b, 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return report([]string{file}, cost)
}

func animateSkeletonAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.AnimateWithSkeletonRequest{
		ImageSize:         pixellab.Size{Width: c.Int("width"), Height: c.Int("height")},
		View:              c.String("view"),
		Direction:         c.String("direction"),
		Isometric:         c.Bool("isometric"),
		ObliqueProjection: c.Bool("oblique-projection"),
		GuidanceScale:     c.Float64("guidance-scale"),
		InitImageStrength: c.Int("init-image-strength"),
		Seed:              seed(c),
	}
	if req.ReferenceImage, err = loadImage(c.String("reference-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.SkeletonKeypoints, err = loadKeypoints(c.String("skeleton-keypoints")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.InitImages, err = loadImages(c.StringSlice("init-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.ColorImage, err = loadImage(c.String("color-image")); err != nil {
		return cli.NewExitError(err, 1)
	}

	frames, cost, err := p.AnimateWithSkeleton(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	files, err := writeFrames(c.String("output"), frames, c.Bool("spritesheet"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return report(files, cost)
}

func animateTextAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.AnimateWithTextRequest{
		ImageSize:          pixellab.Size{Width: 64, Height: 64},
		Description:        c.String("description"),
		Action:             c.String("action"),
		View:               c.String("view"),
		Direction:          c.String("direction"),
		NFrames:            c.Int("n-frames"),
		StartFrameIndex:    c.Int("start-frame-index"),
		TextGuidanceScale:  c.Float64("text-guidance-scale"),
		ImageGuidanceScale: c.Float64("image-guidance-scale"),
		InitImageStrength:  c.Int("init-image-strength"),
		Seed:               seed(c),
	}
	if req.ReferenceImage, err = loadImage(c.String("reference-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.InitImages, err = loadImages(c.StringSlice("init-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.ColorImage, err = loadImage(c.String("color-image")); err != nil {
		return cli.NewExitError(err, 1)
	}

	frames, cost, err := p.AnimateWithText(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	files, err := writeFrames(c.String("output"), frames, c.Bool("spritesheet"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return report(files, cost)
}

func rotateAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.RotateRequest{
		ImageSize:          pixellab.Size{Width: c.Int("width"), Height: c.Int("height")},
		FromView:           c.String("from-view"),
		ToView:             c.String("to-view"),
		FromDirection:      c.String("from-direction"),
		ToDirection:        c.String("to-direction"),
		Isometric:          c.Bool("isometric"),
		ObliqueProjection:  c.Bool("oblique-projection"),
		ImageGuidanceScale: c.Float64("image-guidance-scale"),
		InitImageStrength:  c.Int("init-image-strength"),
		Seed:               seed(c),
	}
	if c.IsSet("view-change") {
		v := c.Int("view-change")
		req.ViewChange = &v
	}
	if c.IsSet("direction-change") {
		v := c.Int("direction-change")
		req.DirectionChange = &v
	}
	if req.FromImage, err = loadImage(c.String("from-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.InitImage, err = loadImage(c.String("init-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.MaskImage, err = loadImage(c.String("mask-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.ColorImage, err = loadImage(c.String("color-image")); err != nil {
		return cli.NewExitError(err, 1)
	}

	b, cost, err := p.Rotate(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	file := c.String("output")
	if err := ioutil.WriteFile(file, b, 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return report([]string{file}, cost)
}

func inpaintAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.InpaintRequest{
		Description:       c.String("description"),
		ImageSize:         pixellab.Size{Width: c.Int("width"), Height: c.Int("height")},
		NoBackground:      c.Bool("no-background"),
		Isometric:         c.Bool("isometric"),
		ObliqueProjection: c.Bool("oblique-projection"),
		TextGuidanceScale: c.Float64("text-guidance-scale"),
		Outline:           c.String("outline"),
		Shading:           c.String("shading"),
		Detail:            c.String("detail"),
		View:              c.String("view"),
		Direction:         c.String("direction"),
		InitImageStrength: c.Int("init-image-strength"),
		Seed:              seed(c),
	}
	if req.InpaintingImage, err = loadImage(c.String("inpainting-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.MaskImage, err = loadImage(c.String("mask-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.InitImage, err = loadImage(c.String("init-image")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if req.ColorImage, err = loadImage(c.String("color-image")); err != nil {
		return cli.NewExitError(err, 1)
	}

	b, cost, err := p.Inpaint(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	file := c.String("output")
	if err := ioutil.WriteFile(file, b, 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return report([]string{file}, cost)
}

func estimateSkeletonAction(c *cli.Context) error {
	p, cleanup, err := newPixelLab(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cleanup()

	req := &pixellab.EstimateSkeletonRequest{}
	if req.Image, err = loadImage(c.String("image")); err != nil {
		return cli.NewExitError(err, 1)
	}

	resp, err := p.EstimateSkeleton(req)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var files []string
	if file := c.String("output"); file != "" {
		if err := ioutil.WriteFile(file, resp.Keypoints, 0644); err != nil {
			return cli.NewExitError(err, 1)
		}
		files = append(files, file)
	}

	b, err := json.Marshal(struct {
		Success     bool            `json:"success"`
		Keypoints   json.RawMessage `json:"keypoints"`
		OutputFiles []string        `json:"output_files"`
		CostUSD     float64         `json:"cost_usd"`
	}{true, resp.Keypoints, files, resp.Usage.USD})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Println(string(b))

	return nil
}

func composeAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return report(nil, 0)
	}

	frames := make([][]byte, c.NArg())
	for i := range frames {
		b, err := ioutil.ReadFile(c.Args().Get(i))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		frames[i] = b
	}

	sheet, err := sprite.Compose(frames)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	file := c.String("output")
	if err := ioutil.WriteFile(file, sheet, 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return report([]string{file}, 0)
}

func paletteAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	strip := palette.Strip(palette.Extract(m, c.Int("colors")))

	out, err := os.Create(c.String("output"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	if err := png.Encode(out, strip); err != nil {
		return cli.NewExitError(err, 1)
	}

	return report([]string{c.String("output")}, 0)
}

func main() {
	app := cli.NewApp()

	app.Name = "pixellab"
	app.Usage = "PixelLab pixel art generation utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			EnvVars: []string{"PIXELLAB_API_KEY"},
			Usage:   "PixelLab API token",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"PIXELLAB_CACHE"},
			Usage:   "path to result cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "balance",
			Usage:  "Check account credit balance",
			Action: balanceAction,
		},
		{
			Name:  "generate",
			Usage: "Text-to-pixel-art generation (up to 400x400)",
			Flags: append(append(append(sizeFlags(64, 64), styleFlags()...), initImageFlags()...), commonFlags(
				&cli.StringFlag{
					Name:     "description",
					Usage:    "text description of the image",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "no-background",
					Usage: "transparent background",
				},
				&cli.BoolFlag{
					Name:  "isometric",
					Usage: "isometric view",
				},
				&cli.Float64Flag{
					Name:  "text-guidance-scale",
					Usage: "text guidance (1.0-20.0)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "output.png",
					Usage:   "output file path",
				},
			)...),
			Action: generateAction,
		},
		{
			Name:  "bitforge",
			Usage: "Style transfer pixel art generation (up to 200x200)",
			Flags: append(append(append(sizeFlags(64, 64), styleFlags()...), initImageFlags()...), commonFlags(
				&cli.StringFlag{
					Name:     "description",
					Usage:    "text description of the image",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "no-background",
					Usage: "transparent background",
				},
				&cli.BoolFlag{
					Name:  "isometric",
					Usage: "isometric view",
				},
				&cli.BoolFlag{
					Name:  "oblique-projection",
					Usage: "oblique projection view",
				},
				&cli.Float64Flag{
					Name:  "text-guidance-scale",
					Usage: "text guidance (1.0-20.0)",
				},
				&cli.Float64Flag{
					Name:  "style-strength",
					Usage: "style transfer strength (0-100)",
				},
				&cli.Float64Flag{
					Name:  "coverage-percentage",
					Usage: "canvas coverage percentage (0-100)",
				},
				&cli.StringFlag{
					Name:  "style-image",
					Usage: "path to style reference image",
				},
				&cli.StringFlag{
					Name:  "inpainting-image",
					Usage: "path to image to inpaint",
				},
				&cli.StringFlag{
					Name:  "mask-image",
					Usage: "path to mask image (white marks the edit area)",
				},
				&cli.StringFlag{
					Name:  "skeleton-keypoints",
					Usage: "path to JSON file with skeleton keypoints",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "output.png",
					Usage:   "output file path",
				},
			)...),
			Action: bitforgeAction,
		},
		{
			Name:  "animate-skeleton",
			Usage: "Skeleton-based animation (up to 256x256)",
			Flags: append(sizeFlags(64, 64), commonFlags(
				&cli.StringFlag{
					Name:     "reference-image",
					Usage:    "path to reference character image",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "skeleton-keypoints",
					Usage:    "path to JSON file with skeleton keyframes",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "view",
					Usage: "camera view angle",
				},
				&cli.StringFlag{
					Name:  "direction",
					Usage: "subject facing direction",
				},
				&cli.BoolFlag{
					Name:  "isometric",
					Usage: "isometric view",
				},
				&cli.BoolFlag{
					Name:  "oblique-projection",
					Usage: "oblique projection view",
				},
				&cli.Float64Flag{
					Name:  "guidance-scale",
					Usage: "guidance scale (1.0-20.0)",
				},
				&cli.StringSliceFlag{
					Name:  "init-image",
					Usage: "path to an initial frame image, repeatable",
				},
				&cli.IntFlag{
					Name:  "init-image-strength",
					Value: 300,
					Usage: "strength of the initial images (1-999)",
				},
				&cli.BoolFlag{
					Name:  "spritesheet",
					Usage: "also write a horizontal spritesheet",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "frame",
					Usage:   "output base name",
				},
			)...),
			Action: animateSkeletonAction,
		},
		{
			Name:  "animate-text",
			Usage: "Text-guided animation (64x64 only)",
			Flags: commonFlags(
				&cli.StringFlag{
					Name:     "description",
					Usage:    "character description",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "action",
					Usage:    "animation action, e.g. walk or attack",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "reference-image",
					Usage:    "path to reference character image",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "view",
					Usage: "camera view angle",
				},
				&cli.StringFlag{
					Name:  "direction",
					Usage: "subject facing direction",
				},
				&cli.IntFlag{
					Name:  "n-frames",
					Usage: "total animation frames (2-20)",
				},
				&cli.IntFlag{
					Name:  "start-frame-index",
					Usage: "starting frame index",
				},
				&cli.Float64Flag{
					Name:  "text-guidance-scale",
					Usage: "text guidance (1.0-20.0)",
				},
				&cli.Float64Flag{
					Name:  "image-guidance-scale",
					Usage: "image guidance (1.0-20.0)",
				},
				&cli.StringSliceFlag{
					Name:  "init-image",
					Usage: "path to an initial frame image, repeatable",
				},
				&cli.IntFlag{
					Name:  "init-image-strength",
					Value: 300,
					Usage: "strength of the initial images (1-999)",
				},
				&cli.BoolFlag{
					Name:  "spritesheet",
					Usage: "also write a horizontal spritesheet",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "frame",
					Usage:   "output base name",
				},
			),
			Action: animateTextAction,
		},
		{
			Name:  "rotate",
			Usage: "Rotate character view or direction (up to 200x200)",
			Flags: append(append(sizeFlags(64, 64), initImageFlags()...), commonFlags(
				&cli.StringFlag{
					Name:     "from-image",
					Usage:    "path to the source image to rotate",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "from-view",
					Usage: "current view",
				},
				&cli.StringFlag{
					Name:  "to-view",
					Usage: "target view",
				},
				&cli.StringFlag{
					Name:  "from-direction",
					Usage: "current direction",
				},
				&cli.StringFlag{
					Name:  "to-direction",
					Usage: "target direction",
				},
				&cli.IntFlag{
					Name:  "view-change",
					Usage: "degrees to tilt (-90 to 90)",
				},
				&cli.IntFlag{
					Name:  "direction-change",
					Usage: "degrees to rotate (-180 to 180)",
				},
				&cli.BoolFlag{
					Name:  "isometric",
					Usage: "isometric view",
				},
				&cli.BoolFlag{
					Name:  "oblique-projection",
					Usage: "oblique projection view",
				},
				&cli.Float64Flag{
					Name:  "image-guidance-scale",
					Usage: "image guidance (1.0-20.0)",
				},
				&cli.StringFlag{
					Name:  "mask-image",
					Usage: "path to mask image, requires init-image",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "rotated.png",
					Usage:   "output file path",
				},
			)...),
			Action: rotateAction,
		},
		{
			Name:  "inpaint",
			Usage: "Edit masked region of existing art (up to 200x200)",
			Flags: append(append(append(sizeFlags(64, 64), styleFlags()...), initImageFlags()...), commonFlags(
				&cli.StringFlag{
					Name:     "description",
					Usage:    "what to generate in the masked area",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "inpainting-image",
					Usage:    "path to the image to edit",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "mask-image",
					Usage:    "path to mask image (white marks the edit area)",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "no-background",
					Usage: "transparent background",
				},
				&cli.BoolFlag{
					Name:  "isometric",
					Usage: "isometric view",
				},
				&cli.BoolFlag{
					Name:  "oblique-projection",
					Usage: "oblique projection view",
				},
				&cli.Float64Flag{
					Name:  "text-guidance-scale",
					Usage: "text guidance (1.0-10.0)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "inpainted.png",
					Usage:   "output file path",
				},
			)...),
			Action: inpaintAction,
		},
		{
			Name:  "estimate-skeleton",
			Usage: "Extract skeleton keypoints from a character image",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "image",
					Usage:    "path to character image",
					Required: true,
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output JSON file for the keypoints",
				},
			},
			Action: estimateSkeletonAction,
		},
		{
			Name:      "compose",
			Usage:     "Combine frame PNGs into a horizontal spritesheet",
			ArgsUsage: "FRAME...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "spritesheet.png",
					Usage:   "output file path",
				},
			},
			Action: composeAction,
		},
		{
			Name:      "palette",
			Usage:     "Extract a color palette image from existing art",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Value: 16,
					Usage: "maximum number of colors",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "palette.png",
					Usage:   "output file path",
				},
			},
			Action: paletteAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
