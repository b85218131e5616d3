package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var keyRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateRandomString, URL-safe rastgele bir sonek üretir.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = keyAlphabet[keyRand.Intn(len(keyAlphabet))]
	}
	return string(b)
}

// CoverObjectKey, event kapak görseli için çakışmayan storage anahtarı üretir.
// Rastgele sonek sayesinde yeniden yükleme eski objeyi ezmez.
func CoverObjectKey(eventID uint) string {
	return fmt.Sprintf("covers/%d/%s", eventID, GenerateRandomString(12))
}
