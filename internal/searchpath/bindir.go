package searchpath

import "github.com/adrg/xdg"

// UserBinDir returns the per-user executable directory: ~/.local/bin on
// Linux and macOS, %LOCALAPPDATA%\Programs on Windows.
func UserBinDir() string {
	return xdg.BinHome
}
