package mandel

import (
	"image"
)

// ImageProvider hands out the finished frame of one rendering. Image blocks
// until every pixel has been written.
type ImageProvider interface {
	Image() (*image.RGBA, error)
}
