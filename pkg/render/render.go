// Package render draws code snippets as PNG cards for media attachments.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/umputun/devtips/pkg/config"
)

var (
	background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}
	headerBar  = color.RGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff}
	titleColor = color.RGBA{R: 0xf9, G: 0xe2, B: 0xaf, A: 0xff}
	codeColor  = color.RGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0xff}
	lineNumber = color.RGBA{R: 0x6c, G: 0x70, B: 0x86, A: 0xff}
)

const (
	padding    = 24
	headerH    = 40
	lineHeight = 18
)

// Renderer draws code cards of a fixed size
type Renderer struct {
	width, height int
	maxLines      int
	maxLineLength int
}

// New makes a renderer from image settings, zero values get defaults
func New(cfg config.ImagesConfig) *Renderer {
	r := &Renderer{width: cfg.Width, height: cfg.Height, maxLines: cfg.MaxCodeLines, maxLineLength: cfg.MaxLineLength}
	if r.width <= 0 {
		r.width = 800
	}
	if r.height <= 0 {
		r.height = 400
	}
	if r.maxLines <= 0 {
		r.maxLines = 15
	}
	if r.maxLineLength <= 0 {
		r.maxLineLength = 80
	}
	return r
}

// Render draws the title and code lines and returns PNG data
func (r *Renderer) Render(code, title string) ([]byte, error) {
	lines := r.lines(code)
	if len(lines) == 0 {
		return nil, errors.New("no code to render")
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, r.width, headerH), image.NewUniform(headerBar), image.Point{}, draw.Src)

	r.text(img, padding, headerH/2+5, titleColor, asciiOnly(r.clip(title)))
	y := headerH + padding
	for i, line := range lines {
		if y > r.height-padding/2 {
			break
		}
		r.text(img, padding, y, lineNumber, fmt.Sprintf("%2d", i+1))
		r.text(img, padding+28, y, codeColor, line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// lines splits code into display lines, trimming blank edges, expanding tabs and clipping long lines
func (r *Renderer) lines(code string) []string {
	code = strings.Trim(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	if strings.TrimSpace(code) == "" {
		return nil
	}
	raw := strings.Split(code, "\n")
	if len(raw) > r.maxLines {
		raw = raw[:r.maxLines]
	}
	res := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.ReplaceAll(strings.TrimRight(l, " \t"), "\t", "    ")
		res = append(res, asciiOnly(r.clip(l)))
	}
	return res
}

func (r *Renderer) clip(s string) string {
	rs := []rune(s)
	if len(rs) <= r.maxLineLength {
		return s
	}
	return string(rs[:r.maxLineLength-3]) + "..."
}

func (r *Renderer) text(dst draw.Image, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// asciiOnly replaces runes the bitmap font can't draw
func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}
