package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateRunID returns the identifier of a scheduling run, e.g. "run_4fQz91Kd0a".
func GenerateRunID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return "run_" + id
}
