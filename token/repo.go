package token

// Pair is the client-side token pair issued at login or refresh. Persist
// records which storage scope owns it: true for the durable scope
// (survives restarts), false for the session scope (lives for the
// current process only).
type Pair struct {
	AccessToken  string
	RefreshToken string
	Persist      bool
}

// Repo manages one storage scope for the token pair. Read returns
// (nil, nil) when the scope holds no tokens.
type Repo interface {
	Read() (*Pair, error)
	Write(pair *Pair) error
	Clear() error
}
