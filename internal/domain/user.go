package domain

// User is the authenticated principal as reported by the upstream auth
// endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"isStaff"`
}

// Session pairs the upstream bearer token with the user it was issued to.
// The gateway treats a principal as authenticated iff both halves are present
// in the session store; token validity is delegated entirely to the upstream
// rejecting stale bearers.
type Session struct {
	ID    string `json:"sessionId"`
	Token string `json:"-"`
	User  User   `json:"user"`
}
