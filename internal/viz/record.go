package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	cellW = 8
	cellH = 16
)

// Recorder rasterizes canvas frames for an animated GIF.
type Recorder struct {
	frames []*image.Paletted
	// Delay between frames in hundredths of a second.
	Delay int
}

func NewRecorder() *Recorder {
	return &Recorder{Delay: 5}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = r.frames[:0] }

// Capture draws every lit braille dot as a block in its cell color.
func (r *Recorder) Capture(c *Canvas) {
	pal := color.Palette(palette.Plan9)
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), pal)
	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == blank {
				continue
			}
			idx := uint8(pal.Index(c.Colors[row][col]))
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !c.Lit(col*2+dx, row*4+dy) {
						continue
					}
					x0, y0 := col*cellW+dx*dotW, row*cellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save writes the captured frames as a looping GIF.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
