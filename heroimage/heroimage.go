// Package heroimage downloads a recipe's hero image, flattens it onto a white
// background, scales it down to a maximum width and stores it as JPEG.
package heroimage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aluiziolira/go-scrape-recipes/config"
	"github.com/gocolly/colly/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const acceptImage = "image/avif,image/webp,image/png,image/jpeg,image/*;q=0.8,*/*;q=0.5"

var (
	// ErrNotImage is returned when the response is not an image/* type.
	ErrNotImage = errors.New("heroimage: response is not an image")
	// ErrTooLarge is returned when the body reaches the configured byte cap.
	ErrTooLarge = errors.New("heroimage: image exceeds size limit")
	// ErrTooManyPixels is returned when the declared dimensions exceed the
	// pixel budget. The check runs before any pixel data is decoded.
	ErrTooManyPixels = errors.New("heroimage: image exceeds pixel limit")
)

// Retriever fetches hero images with its own collector and timeout.
type Retriever struct {
	collector *colly.Collector
	store     ImageStore
	maxBytes  int
	maxPixels int
	maxWidth  int
	quality   int
}

// NewRetriever builds a retriever configured from cfg that saves into store.
func NewRetriever(cfg *config.Config, store ImageStore) *Retriever {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(cfg.MaxImageBytes),
	)
	collector.SetRequestTimeout(cfg.ImageTimeout)
	collector.IgnoreRobotsTxt = !cfg.RespectRobotsTxt
	collector.ParseHTTPErrorResponse = true

	collector.OnResponse(func(r *colly.Response) {
		r.Ctx.Put("status", r.StatusCode)
		r.Ctx.Put("content_type", r.Headers.Get("Content-Type"))
		r.Ctx.Put("body", r.Body)
	})

	return &Retriever{
		collector: collector,
		store:     store,
		maxBytes:  cfg.MaxImageBytes,
		maxPixels: cfg.MaxImagePixels,
		maxWidth:  cfg.MaxImageWidth,
		quality:   cfg.JPEGQuality,
	}
}

// Retrieve downloads imageURL, normalizes it and returns the stored location.
func (r *Retriever) Retrieve(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("heroimage: empty url")
	}
	if strings.HasPrefix(imageURL, "//") {
		imageURL = "https:" + imageURL
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := r.download(imageURL)
	if err != nil {
		return "", err
	}

	jpg, err := Normalize(raw, r.maxWidth, r.quality, r.maxPixels)
	if err != nil {
		return "", fmt.Errorf("normalize %s: %w", imageURL, err)
	}

	location, err := r.store.Save(ctx, jpg, ".jpg")
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	slog.Debug("hero image stored", slog.String("image_url", imageURL), slog.String("location", location))
	return location, nil
}

func (r *Retriever) download(imageURL string) ([]byte, error) {
	hdr := http.Header{}
	hdr.Set("Accept", acceptImage)

	reqCtx := colly.NewContext()
	if err := r.collector.Request(http.MethodGet, imageURL, nil, reqCtx, hdr); err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", imageURL, err)
	}

	status, _ := reqCtx.GetAny("status").(int)
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("fetch image %s: http status %d", imageURL, status)
	}
	contentType, _ := reqCtx.GetAny("content_type").(string)
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return nil, fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}
	body, _ := reqCtx.GetAny("body").([]byte)
	if r.maxBytes > 0 && len(body) >= r.maxBytes {
		return nil, ErrTooLarge
	}
	return body, nil
}

// Normalize decodes data, flattens any transparency onto white, scales the
// result down to maxWidth keeping the aspect ratio, and encodes it as JPEG.
// Images whose header declares more than maxPixels pixels are rejected
// before decoding; maxPixels <= 0 disables the check.
func Normalize(data []byte, maxWidth, quality, maxPixels int) ([]byte, error) {
	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if maxPixels > 0 && int64(header.Width)*int64(header.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, header.Width, header.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := flatten(src)
	if b := img.Bounds(); maxWidth > 0 && b.Dx() > maxWidth {
		height := b.Dy() * maxWidth / b.Dx()
		if height < 1 {
			height = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten composites src over an opaque white canvas.
func flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
