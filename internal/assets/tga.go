package assets

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types.
const (
	tgaTypeUncompressed = 2
	tgaTypeRLE          = 10
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// decodeTGA decodes uncompressed or RLE true-color TGA data. TGA has no
// signature, so it is only tried after the registered formats fail.
func decodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaTypeUncompressed && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.New("tga: empty image")
	}
	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	p := &tgaPixels{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}
	if imageType == tgaTypeUncompressed {
		return p.img, p.raw()
	}
	return p.img, p.rle()
}

// tgaPixels writes BGR(A) source pixels into img in scan order.
type tgaPixels struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	n           int
	width       int
	height      int
	topToBottom bool
}

func (p *tgaPixels) total() int { return p.width * p.height }

// read returns the next source pixel as RGBA.
func (p *tgaPixels) read() ([4]byte, bool) {
	if p.pos+p.bpp > len(p.src) {
		return [4]byte{}, false
	}
	s := p.src[p.pos:]
	c := [4]byte{s[2], s[1], s[0], 255}
	if p.bpp == 4 {
		c[3] = s[3]
	}
	p.pos += p.bpp
	return c, true
}

// put stores c at the next destination pixel. Bottom-up files are flipped
// so row 0 is the top of the image.
func (p *tgaPixels) put(c [4]byte) {
	x, y := p.n%p.width, p.n/p.width
	if !p.topToBottom {
		y = p.height - 1 - y
	}
	copy(p.img.Pix[p.img.PixOffset(x, y):], c[:])
	p.n++
}

func (p *tgaPixels) raw() error {
	for p.n < p.total() {
		c, ok := p.read()
		if !ok {
			return errTGATruncated
		}
		p.put(c)
	}
	return nil
}

func (p *tgaPixels) rle() error {
	for p.n < p.total() {
		if p.pos >= len(p.src) {
			return errTGATruncated
		}
		packet := p.src[p.pos]
		p.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := p.read()
			if !ok {
				return errTGATruncated
			}
			for i := 0; i < count && p.n < p.total(); i++ {
				p.put(c)
			}
			continue
		}
		for i := 0; i < count && p.n < p.total(); i++ {
			c, ok := p.read()
			if !ok {
				return errTGATruncated
			}
			p.put(c)
		}
	}
	return nil
}
