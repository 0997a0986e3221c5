package main

import (
	"errors"
	"log/slog"
	"os"
)

// reported wraps errors that were already logged where they happened
type reported struct {
	error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var r reported
		if !errors.As(err, &r) {
			slog.Error(err.Error())
		}
		os.Exit(1)
	}
}
