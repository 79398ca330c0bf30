package providers

import (
	"context"
	"net/http"
)

// PlayerIDHeader carries the caller identity. Authentication itself lives in
// front of the daemon (gateway, wallet verifier); rankd only requires that an
// identity is present and well-formed, and treats it as unforgeable.
const PlayerIDHeader = "X-Player-ID"

const maxPlayerIDLength = 128

type callerKey struct{}

// RequireIdentity rejects requests without a usable caller identity and puts
// the identity into the request context for the controllers.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Header.Get(PlayerIDHeader)
		if player == "" || len(player) > maxPlayerIDLength {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), callerKey{}, player)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFrom returns the identity placed by RequireIdentity, or "" when the
// route was not identity-guarded.
func CallerFrom(ctx context.Context) string {
	player, _ := ctx.Value(callerKey{}).(string)
	return player
}
