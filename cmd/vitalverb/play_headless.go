//go:build headless

package main

import "errors"

func playFile(options) error {
	return errors.New("playback is not available in headless builds")
}
