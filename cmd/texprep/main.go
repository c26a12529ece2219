// Command texprep bakes an image into upload-ready texture pixels.
//
// It dilates colour into transparent borders, optionally resizes or snaps
// the image to power-of-two dimensions, and writes the result as PNG.
//
// Usage:
//
//	texprep -in atlas.png -out atlas_baked.png
//	texprep -in sprite.png -out sprite_pot.png -pot -mipmaps
//	texprep -in map.png -out map.png -region 0,0,256,256 -passes 24
//	texprep -outdir baked/ -pot sprites/*.png
//	texprep -version
package main

import (
	"errors"
	"flag"
	"fmt"
	stdimage "image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/texprep"
	"github.com/gogpu/texprep/internal/image"
	"github.com/gogpu/texprep/internal/parallel"
)

type config struct {
	in        string
	out       string
	region    string
	resize    string
	pot       bool
	mipmaps   bool
	tiles     bool
	threshold uint
	passes    int
	verbose   bool
	outDir    string
	workers   int
	version   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
	flag.StringVar(&cfg.out, "out", "baked.png", "output PNG file")
	flag.StringVar(&cfg.region, "region", "", "dilate only x,y,w,h instead of the whole image")
	flag.StringVar(&cfg.resize, "resize", "", "resample the result to WxH")
	flag.BoolVar(&cfg.pot, "pot", false, "resample down to power-of-two dimensions")
	flag.BoolVar(&cfg.mipmaps, "mipmaps", false, "also write mip levels as <out>_mipN.png")
	flag.BoolVar(&cfg.tiles, "tiles", false, "report opaque tiles of a 16x16 tileset")
	flag.UintVar(&cfg.threshold, "threshold", 10, "alpha a pixel must exceed to bleed colour")
	flag.IntVar(&cfg.passes, "passes", 11, "number of dilation sweeps")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.StringVar(&cfg.outDir, "outdir", "", "batch mode: write each input as <outdir>/<name>.png")
	flag.IntVar(&cfg.workers, "j", 0, "batch mode: parallel jobs (0 = GOMAXPROCS)")
	flag.BoolVar(&cfg.version, "version", false, "print the texprep version and exit")
	flag.Parse()

	if cfg.version {
		fmt.Println(versionString())
		return
	}

	inputs := flag.Args()
	if cfg.in != "" {
		inputs = append([]string{cfg.in}, inputs...)
	}
	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.verbose {
		texprep.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if len(inputs) == 1 && cfg.outDir == "" {
		cfg.in = inputs[0]
		if err := run(cfg); err != nil {
			log.Fatalf("texprep: %v", err)
		}
		return
	}

	if cfg.outDir == "" {
		log.Fatal("texprep: -outdir is required with several inputs")
	}
	if err := runBatch(cfg, inputs); err != nil {
		log.Fatalf("texprep: %v", err)
	}
}

// runBatch bakes every input into cfg.outDir on a worker pool.
func runBatch(cfg config, inputs []string) error {
	if err := os.MkdirAll(cfg.outDir, 0o750); err != nil {
		return err
	}

	pool := parallel.NewWorkerPool(cfg.workers)
	defer pool.Close()

	jobs := make([]parallel.Job, len(inputs))
	for i, in := range inputs {
		c := cfg
		c.in = in
		c.out = filepath.Join(cfg.outDir, strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+".png")
		jobs[i] = func() error { return run(c) }
	}

	var failed []error
	for i, err := range pool.Run(jobs) {
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", inputs[i], err))
		}
	}
	return errors.Join(failed...)
}

func run(cfg config) error {
	if cfg.threshold > 255 {
		return fmt.Errorf("threshold %d out of range 0-255", cfg.threshold)
	}
	opts := []texprep.Option{
		texprep.WithAlphaThreshold(uint8(cfg.threshold)),
		texprep.WithPasses(cfg.passes),
	}

	src, err := image.LoadImage(cfg.in)
	if err != nil {
		return err
	}
	// Never dilate the decoder's buffer in place; it may be shared.
	img := cloneNRGBA(src)

	if cfg.tiles {
		flags, err := texprep.AnalyseTileFlags(img.Pix, img.Rect.Dx(), img.Rect.Dy())
		if err != nil {
			return err
		}
		n := 0
		for id := range texprep.TileCount {
			if flags.Opaque(id) {
				n++
			}
		}
		log.Printf("%d of %d tiles opaque", n, texprep.TileCount)
	}

	if cfg.region != "" {
		x, y, w, h, err := parseRegion(cfg.region)
		if err != nil {
			return err
		}
		if err := texprep.DilateRegion(img.Pix, img.Rect.Dx(), img.Rect.Dy(), x, y, w, h, opts...); err != nil {
			return err
		}
	} else if err := texprep.DilateNRGBA(img, opts...); err != nil {
		return err
	}

	out := img
	var tex *texprep.Texture
	if cfg.pot || cfg.mipmaps {
		// img is already dilated; Prepare must not bleed outside -region.
		prep := append(slices.Clone(opts), texprep.WithPasses(0))
		if cfg.pot {
			prep = append(prep, texprep.WithPowerOfTwo())
		}
		if cfg.mipmaps {
			prep = append(prep, texprep.WithMipmaps())
		}
		tex, err = texprep.Prepare(img, prep...)
		if err != nil {
			return err
		}
		defer tex.Release()
		out = levelImage(tex, 0)
	}

	if cfg.resize != "" {
		w, h, err := parseSize(cfg.resize)
		if err != nil {
			return err
		}
		if out, err = texprep.ResizeNRGBA(out, w, h); err != nil {
			return err
		}
	}

	if err := image.SavePNG(cfg.out, out); err != nil {
		return err
	}
	if tex != nil && cfg.mipmaps {
		if err := saveMips(cfg.out, tex); err != nil {
			return err
		}
	}

	p := message.NewPrinter(language.English)
	log.Print(p.Sprintf("baked %s: %dx%d, %d pixels -> %s",
		cfg.in, out.Rect.Dx(), out.Rect.Dy(), out.Rect.Dx()*out.Rect.Dy(), cfg.out))
	return nil
}

func versionString() string {
	return "texprep " + texprep.Version
}

// saveMips writes levels 1.. of tex next to out.
func saveMips(out string, tex *texprep.Texture) error {
	ext := filepath.Ext(out)
	stem := strings.TrimSuffix(out, ext)
	for n := 1; n < tex.NumLevels(); n++ {
		name := fmt.Sprintf("%s_mip%d.png", stem, n)
		if err := image.SavePNG(name, levelImage(tex, n)); err != nil {
			return err
		}
	}
	return nil
}

func levelImage(tex *texprep.Texture, n int) *stdimage.NRGBA {
	pix, w, h := tex.Level(n)
	return &stdimage.NRGBA{Pix: pix, Stride: w * 4, Rect: stdimage.Rect(0, 0, w, h)}
}

func cloneNRGBA(src *stdimage.NRGBA) *stdimage.NRGBA {
	dst := stdimage.NewNRGBA(stdimage.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
	rowBytes := src.Rect.Dx() * 4
	for y := range src.Rect.Dy() {
		copy(dst.Pix[y*dst.Stride:], src.Pix[y*src.Stride:y*src.Stride+rowBytes])
	}
	return dst
}

var errBadArg = errors.New("malformed argument")

// parseRegion parses "x,y,w,h".
func parseRegion(s string) (x, y, w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("region %q: want x,y,w,h: %w", s, errBadArg)
	}
	var v [4]int
	for i, p := range parts {
		if v[i], err = strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return 0, 0, 0, 0, fmt.Errorf("region %q: %w", s, errBadArg)
		}
	}
	return v[0], v[1], v[2], v[3], nil
}

// parseSize parses "WxH".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH: %w", s, errBadArg)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, errBadArg)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, errBadArg)
	}
	return w, h, nil
}
