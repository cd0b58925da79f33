package main

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// PANEL_CORNER is the slice inset of panel images, in source pixels.
const PANEL_CORNER = 8

// loadFace reads a TrueType font, falling back to the built-in bitmap face.
func loadFace(path string, size float64) font.Face {
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		log.Warnf("no font at %s, using basicfont: %v", path, err)
		return basicfont.Face7x13
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		log.Warnf("cant read font %s: %v", path, err)
		return basicfont.Face7x13
	}
	tt, err := truetype.Parse(buf.Bytes())
	if err != nil {
		log.Warnf("cant parse font %s: %v", path, err)
		return basicfont.Face7x13
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

// loadPanel reads the nine-slice panel image or draws a plain framed one.
func loadPanel(path string) *ebiten.Image {
	img, _, err := ebitenutil.NewImageFromFile(path, ebiten.FilterDefault)
	if err == nil {
		return img
	}
	log.Warnf("no panel at %s, drawing one: %v", path, err)

	const side = PANEL_CORNER*2 + 1
	rgba := image.NewRGBA(image.Rect(0, 0, side, side))
	border := color.RGBA{0xed, 0xbc, 0x1e, 0xff}
	fill := color.RGBA{0x20, 0x30, 0x18, 0xe0}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			edge := x < 2 || y < 2 || x >= side-2 || y >= side-2
			if edge {
				rgba.Set(x, y, border)
			} else {
				rgba.Set(x, y, fill)
			}
		}
	}
	img, err = ebiten.NewImageFromImage(rgba, ebiten.FilterDefault)
	if err != nil {
		log.Fatalf("cant create panel image: %v", err)
	}
	return img
}
