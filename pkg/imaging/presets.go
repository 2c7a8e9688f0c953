package imaging

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownPreset is returned by ParsePreset for a name it does not know
var ErrUnknownPreset = errors.New("unknown image preset")

// Size is an image resolution in pixels
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Orientation picks whether the long side of a preset is horizontal
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

// FromRatio returns a size of the given height with width floor(height*ratio)
func FromRatio(height int, ratio float64) Size {
	return Size{Width: int(float64(height) * ratio), Height: height}
}

// Widescreen returns a 16:9 size of the given height, or 9:16 in portrait
func Widescreen(height int, o Orientation) Size {
	if o == Portrait {
		return FromRatio(height, 9.0/16.0)
	}
	return FromRatio(height, 16.0/9.0)
}

// Square returns a 1:1 size
func Square(height int) Size {
	return FromRatio(height, 1)
}

// HD is 1920x1080
func HD(o Orientation) Size {
	return oriented(1920, 1080, o)
}

// QHD is 2560x1440
func QHD(o Orientation) Size {
	return oriented(2560, 1440, o)
}

// UHD is 3840x2160
func UHD(o Orientation) Size {
	return oriented(3840, 2160, o)
}

// Mobile is a 2778x1284 phone screen divided by scale. A scale below 1 means 1.
func Mobile(scale int, o Orientation) Size {
	scale = max(scale, 1)
	return oriented(2778/scale, 1284/scale, o)
}

func oriented(long, short int, o Orientation) Size {
	if o == Portrait {
		return Size{Width: short, Height: long}
	}
	return Size{Width: long, Height: short}
}

// ParsePreset resolves "hd", "qhd", "uhd", "mobile" or "mobile/<scale>"
func ParsePreset(name string, o Orientation) (Size, error) {
	base, arg, hasArg := strings.Cut(strings.ToLower(name), "/")
	switch {
	case base == "hd" && !hasArg:
		return HD(o), nil
	case base == "qhd" && !hasArg:
		return QHD(o), nil
	case base == "uhd" && !hasArg:
		return UHD(o), nil
	case base == "mobile":
		scale := 1
		if hasArg {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return Size{}, fmt.Errorf("%w: %q needs a positive scale", ErrUnknownPreset, name)
			}
			scale = n
		}
		return Mobile(scale, o), nil
	default:
		return Size{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// AspectRatio returns width / height
func (s Size) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}
