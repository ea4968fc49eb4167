// Package viewport measures the width, in pixels, of the terminal the
// program is attached to.
package viewport

import "os"

// Width returns the pixel width of the terminal behind stdout. Terminals that
// do not report pixel sizes are estimated from their column count. Zero means
// the width could not be determined.
func Width(cellPixelWidth int) int {
	return widthOf(int(os.Stdout.Fd()), cellPixelWidth)
}

func widthOf(fd, cellPixelWidth int) int {
	cols, xpixel, err := querySize(fd)
	if err != nil {
		return 0
	}
	return pixels(cols, xpixel, cellPixelWidth)
}

func pixels(cols, xpixel, cellPixelWidth int) int {
	if xpixel > 0 {
		return xpixel
	}
	if cols <= 0 || cellPixelWidth <= 0 {
		return 0
	}
	return cols * cellPixelWidth
}
