package leaderboard

import "fmt"

// PublicKey is a Casper account public key in its hex form.
type PublicKey string

const shortKeepPrefix = 8
const shortKeepSuffix = 6

// Short returns a display form of the key: keys of 14 characters or fewer
// are returned unchanged, longer keys keep the first 8 and last 6 characters
// joined by an ellipsis.
func (pk PublicKey) Short() string {
	s := string(pk)
	if len(s) <= shortKeepPrefix+shortKeepSuffix {
		return s
	}
	return fmt.Sprintf("%s…%s", s[:shortKeepPrefix], s[len(s)-shortKeepSuffix:])
}

// ExplorerURL returns the cspr.live account page for the key on the given
// network ("testnet" uses the testnet explorer host).
func (pk PublicKey) ExplorerURL(network string) string {
	if network == "testnet" {
		return fmt.Sprintf("https://testnet.cspr.live/account/%s", pk)
	}
	return fmt.Sprintf("https://cspr.live/account/%s", pk)
}
