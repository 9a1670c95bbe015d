package leaderboard

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadPublicKeys loads newline-delimited public keys from path, in input
// order. Blank lines and lines starting with '#' are skipped.
func ReadPublicKeys(path string) ([]PublicKey, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "missing input file %s (one public key per line)", path)
	}
	defer file.Close()

	keys := []PublicKey{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, PublicKey(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return keys, nil
}

// Limit caps keys to the first n entries. n <= 0 means no cap.
func Limit(keys []PublicKey, n int) []PublicKey {
	if n > 0 && n < len(keys) {
		return keys[:n]
	}
	return keys
}
