package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws an image sliced 3×3 as a panel of any size: corners keep their
// scale, edges stretch along one axis, the center along both.
type Nine struct {
	image          *ebiten.Image
	R, G, B, Alpha float64
	Scale          float64
	srcX, srcY     [4]int
	dstX, dstY     [4]float64
}

// NewNine slices img with corner pixels cut from each side.
func NewNine(img *ebiten.Image, corner int, scale float64) *Nine {
	w, h := img.Size()
	return &Nine{
		image: img,
		R:     1, G: 1, B: 1, Alpha: 1,
		Scale: scale,
		srcX:  [4]int{0, corner, w - corner, w},
		srcY:  [4]int{0, corner, h - corner, h},
	}
}

func (n *Nine) SetBounds(x, y, width, height float64) {
	cw := n.Scale * float64(n.srcX[1])
	ch := n.Scale * float64(n.srcY[1])
	n.dstX = [4]float64{x, x + cw, x + width - cw, x + width}
	n.dstY = [4]float64{y, y + ch, y + height - ch, y + height}
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			sw := n.srcX[i+1] - n.srcX[i]
			sh := n.srcY[j+1] - n.srcY[j]
			dw := n.dstX[i+1] - n.dstX[i]
			dh := n.dstY[j+1] - n.dstY[j]
			if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(dw/float64(sw), dh/float64(sh))
			op.GeoM.Translate(n.dstX[i], n.dstY[j])
			op.ColorM.Scale(n.R, n.G, n.B, n.Alpha)
			sub := image.Rect(n.srcX[i], n.srcY[j], n.srcX[i+1], n.srcY[j+1])
			screen.DrawImage(n.image.SubImage(sub).(*ebiten.Image), op)
		}
	}
}
