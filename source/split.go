package source

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"integral/channels"
	"integral/sat"
)

// Split widens the samples of img to float64 and separates them into one
// grid per component, keeping each sample at its native depth (0-255 for
// 8-bit formats, 0-65535 for 16-bit ones). Colour images are split as
// R, G, B and, when the format carries alpha, non-premultiplied A.
func Split(img image.Image) channels.Collection {
	r := img.Bounds()
	switch m := img.(type) {
	case *image.Gray:
		return split(r, 1, func(x, y int, px []float64) {
			px[0] = float64(m.Pix[m.PixOffset(x, y)])
		})
	case *image.Gray16:
		return split(r, 1, func(x, y int, px []float64) {
			i := m.PixOffset(x, y)
			px[0] = float64(uint16(m.Pix[i])<<8 | uint16(m.Pix[i+1]))
		})
	case *image.CMYK:
		return split(r, 4, func(x, y int, px []float64) {
			s := m.Pix[m.PixOffset(x, y):]
			px[0], px[1], px[2], px[3] = float64(s[0]), float64(s[1]), float64(s[2]), float64(s[3])
		})
	case *image.NRGBA:
		return split(r, 4, func(x, y int, px []float64) {
			s := m.Pix[m.PixOffset(x, y):]
			px[0], px[1], px[2], px[3] = float64(s[0]), float64(s[1]), float64(s[2]), float64(s[3])
		})
	case *image.RGBA:
		return split(r, 4, func(x, y int, px []float64) {
			c := color.NRGBAModel.Convert(m.RGBAAt(x, y)).(color.NRGBA)
			px[0], px[1], px[2], px[3] = float64(c.R), float64(c.G), float64(c.B), float64(c.A)
		})
	case *image.NRGBA64:
		return split(r, 4, func(x, y int, px []float64) {
			c := m.NRGBA64At(x, y)
			px[0], px[1], px[2], px[3] = float64(c.R), float64(c.G), float64(c.B), float64(c.A)
		})
	case *image.RGBA64:
		return split(r, 4, func(x, y int, px []float64) {
			c := color.NRGBA64Model.Convert(m.RGBA64At(x, y)).(color.NRGBA64)
			px[0], px[1], px[2], px[3] = float64(c.R), float64(c.G), float64(c.B), float64(c.A)
		})
	case *image.YCbCr:
		return split(r, 3, func(x, y int, px []float64) {
			c := m.YCbCrAt(x, y)
			cr, cg, cb := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
			px[0], px[1], px[2] = float64(cr), float64(cg), float64(cb)
		})
	case *image.NYCbCrA:
		return split(r, 4, func(x, y int, px []float64) {
			c := m.NYCbCrAAt(x, y)
			cr, cg, cb := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
			px[0], px[1], px[2], px[3] = float64(cr), float64(cg), float64(cb), float64(c.A)
		})
	case *image.Paletted:
		pal, alpha := nrgbaPalette(m.Palette)
		n := 3
		if alpha {
			n = 4
		}
		return split(r, n, func(x, y int, px []float64) {
			c := pal[m.ColorIndexAt(x, y)]
			px[0], px[1], px[2] = float64(c.R), float64(c.G), float64(c.B)
			if alpha {
				px[3] = float64(c.A)
			}
		})
	default:
		dst := image.NewNRGBA64(r)
		draw.Draw(dst, r, img, r.Min, draw.Src)
		return Split(dst)
	}
}

func split(r image.Rectangle, n int, sample func(x, y int, px []float64)) channels.Collection {
	rows, cols := r.Dy(), r.Dx()
	c := make(channels.Collection, n)
	for i := range c {
		c[i] = channels.Channel{Index: i, Grid: sat.NewGrid[float64](rows, cols)}
	}

	px := make([]float64, n)
	for y := range rows {
		for x := range cols {
			sample(r.Min.X+x, r.Min.Y+y, px)
			for i, v := range px {
				c[i].Grid.Set(y, x, v)
			}
		}
	}
	return c
}

// nrgbaPalette converts p to non-premultiplied colours, padded to 256
// entries so that out-of-range indices read as transparent black.
func nrgbaPalette(p color.Palette) ([]color.NRGBA, bool) {
	pal := make([]color.NRGBA, 256)
	alpha := false
	for i, c := range p {
		if i >= len(pal) {
			break
		}
		pal[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		if pal[i].A != 0xff {
			alpha = true
		}
	}
	return pal, alpha
}
