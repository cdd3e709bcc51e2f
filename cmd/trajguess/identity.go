package main

import (
	"fmt"

	"github.com/denisbrodbeck/machineid"

	"github.com/vovakirdan/trajguess/internal/storage"
)

// localPlayer returns a stable default player name for this machine.
func localPlayer() string {
	id, err := machineid.ProtectedID("trajguess")
	if err != nil || len(id) < 6 {
		return "player"
	}
	return "player-" + id[:6]
}

// resolvePlayer picks the player name for seat one. A name given with --user
// must be registered when a store is available.
func resolvePlayer(store *storage.Store, user string) (string, error) {
	if user == "" {
		return localPlayer(), nil
	}
	name, err := storage.NormalizeName(user)
	if err != nil {
		return "", err
	}
	if store == nil {
		return name, nil
	}
	ok, err := store.UserExists(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s (run 'trajguess users register %s')", storage.ErrUserNotFound, name, name)
	}
	return name, nil
}
