package endpoints

import (
	"net/http"
	"strings"
)

// ExtractToken pulls the access token from the Authorization header or,
// for websocket handshakes where browsers cannot set headers, the token
// query parameter.
func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
