package normalize

import "github.com/tidwall/gjson"

// Identity is the canonical operator identity carried by a session.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// DefaultRole applies when a login response names no role.
const DefaultRole = "User"

// LoginPayload resolves the credential token and operator identity from a raw
// login response. The service answers in several shapes: {token, user},
// {data: {token, userId, userName, role}}, or a flat mix. The token is taken
// from the top-level "token" field first, then one level under "data"; when
// no token is found anywhere the login is a failure regardless of transport
// status, and ok is false. The identity prefers an explicit user object and
// is otherwise assembled field by field, falling back to the username the
// operator submitted.
func LoginPayload(raw []byte, submittedUsername string) (Identity, string, bool) {
	doc := gjson.ParseBytes(raw)

	token := Str(doc, "", "token", "data.token")
	if token == "" {
		return Identity{}, "", false
	}

	if user, ok := first(doc, "user", "data.user"); ok && user.IsObject() {
		identity := Identity{
			ID:       Int(user, 0, "userId", "id"),
			Username: Str(user, submittedUsername, "userName", "username", "name"),
			Role:     Str(user, DefaultRole, "role"),
		}
		return identity, token, true
	}

	inner := doc
	if data := doc.Get("data"); data.IsObject() {
		inner = data
	}
	identity := Identity{
		ID:       Int(inner, 0, "userId", "id"),
		Username: Str(inner, submittedUsername, "userName", "username"),
		Role:     Str(inner, DefaultRole, "role"),
	}
	return identity, token, true
}
