//go:build linux || darwin || windows

package main

import "github.com/SanCognition/reap/internal/app"

func main() {
	app.Execute()
}
