//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package viewport

import "golang.org/x/sys/unix"

func querySize(fd int) (cols, xpixel int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Xpixel), nil
}
