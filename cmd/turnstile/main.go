package main

import "github.com/mfcrocker/turnstile/cmd/turnstile/cmd"

func main() {
	cmd.Execute()
}
