package util

import (
	"os"
	"strings"
)

func LoadBannedWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words, nil
}

func SaveBannedWords(path string, words []string) error {
	return os.WriteFile(path, []byte(strings.Join(words, "\n")), 0644)
}

func FindBannedWord(ids []string, words []string) (string, bool) {
	for _, word := range words {
		for _, id := range ids {
			if strings.Contains(id, word) {
				return word, true
			}
		}
	}
	return "", false
}
