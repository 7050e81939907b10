package profile

import (
	"crypto/rand"
	"math/big"
	"strings"
)

var adjectives = []string{
	"quiet", "swift", "mellow", "brave", "sunny", "dusty", "lucky", "fuzzy",
	"gentle", "witty", "curious", "sleepy", "breezy", "cosmic", "amber",
	"silver", "crimson", "velvet", "misty", "golden", "wandering", "hidden",
	"distant", "drifting", "restless", "quirky", "daring", "humble",
}

var animals = []string{
	"kitten", "puppy", "bunny", "panda", "koala", "fox", "otter", "hedgehog",
	"squirrel", "hamster", "fawn", "lamb", "raccoon", "mole", "ferret",
	"beaver", "seahorse", "dolphin", "narwhal", "penguin", "flamingo",
	"sparrow", "robin", "toucan", "parrot", "heron", "lynx", "badger",
}

// RandomName generates a friendly anonymous display name like "MistyOtter".
func RandomName() string {
	adj := adjectives[randomIndex(len(adjectives))]
	animal := animals[randomIndex(len(animals))]
	return capitalize(adj) + capitalize(animal)
}

func capitalize(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

// randomIndex returns a cryptographically secure random index for a slice
// of the given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; a fixed index is still a valid name then.
		return 0
	}
	return int(n.Int64())
}
