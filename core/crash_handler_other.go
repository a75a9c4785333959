//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package core

func resetTerminalMode() {}
