package native

import (
	"image"
	"image/color"
)

// convert writes img into dst as 8-bit interleaved pixels with comp channels,
// tightly packed.
func convert(dst []byte, img image.Image, comp int) {
	b := img.Bounds()
	w := b.Dx()

	switch m := img.(type) {
	case *image.Gray:
		if comp == 1 {
			for y := 0; y < b.Dy(); y++ {
				copy(dst[y*w:], m.Pix[y*m.Stride:y*m.Stride+w])
			}
			return
		}
	case *image.NRGBA:
		if comp == 4 {
			for y := 0; y < b.Dy(); y++ {
				copy(dst[y*w*4:], m.Pix[y*m.Stride:y*m.Stride+w*4])
			}
			return
		}
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			putPixel(dst[i:i+comp], c)
			i += comp
		}
	}
}

func putPixel(dst []byte, c color.NRGBA) {
	switch len(dst) {
	case 1:
		dst[0] = luma(c)
	case 2:
		dst[0], dst[1] = luma(c), c.A
	case 3:
		dst[0], dst[1], dst[2] = c.R, c.G, c.B
	case 4:
		dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, c.A
	}
}

// luma uses stb_image's integer weights.
func luma(c color.NRGBA) uint8 {
	return uint8((uint32(c.R)*77 + uint32(c.G)*150 + uint32(c.B)*29) >> 8)
}

func flipRows(pix []byte, stride int) {
	if stride == 0 {
		return
	}
	tmp := make([]byte, stride)
	for top, bot := 0, len(pix)-stride; top < bot; top, bot = top+stride, bot-stride {
		copy(tmp, pix[top:top+stride])
		copy(pix[top:top+stride], pix[bot:bot+stride])
		copy(pix[bot:bot+stride], tmp)
	}
}
