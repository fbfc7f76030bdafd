package api

// User is the account record the API returns across user, session and
// feed endpoints. Optional fields are populated per endpoint.
type User struct {
	ID                       int64  `json:"id"`
	Name                     string `json:"name"`
	Email                    string `json:"email"`
	GravatarID               string `json:"gravatar_id,omitempty"`
	Size                     int    `json:"size,omitempty"`
	Following                int    `json:"following,omitempty"`
	Followers                int    `json:"followers,omitempty"`
	CurrentUserFollowingUser bool   `json:"current_user_following_user,omitempty"`
	Admin                    bool   `json:"admin,omitempty"`
	Activated                bool   `json:"activated,omitempty"`
}

// Micropost is a single feed entry.
type Micropost struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	GravatarID string `json:"gravatar_id,omitempty"`
	Image      string `json:"image,omitempty"`
	Size       int    `json:"size,omitempty"`
	Timestamp  string `json:"timestamp"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
}

// TokenDetail is one half of the token envelope issued at login.
type TokenDetail struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

// AuthTokens is the token envelope on a successful login response.
type AuthTokens struct {
	Access  TokenDetail `json:"access"`
	Refresh TokenDetail `json:"refresh"`
}

// LoginResponse is the body of POST login.
type LoginResponse struct {
	User   *User       `json:"user"`
	Tokens *AuthTokens `json:"tokens"`
	Flash  *Flash      `json:"flash,omitempty"`
}

// SessionResponse is the body of GET sessions (who-am-I).
type SessionResponse struct {
	User *User `json:"user"`
}

// ListParams are the pagination parameters shared by list endpoints.
type ListParams struct {
	Page int
}

// FeedResponse is the body of the feed endpoint at the API root.
type FeedResponse struct {
	FeedItems  []Micropost `json:"feed_items"`
	Followers  int         `json:"followers"`
	Following  int         `json:"following"`
	Gravatar   string      `json:"gravatar"`
	Micropost  int         `json:"micropost"`
	TotalCount int         `json:"total_count"`
}

// UserListResponse is the body of GET users.
type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
}

// UserShowResponse is the body of GET users/{id}.
type UserShowResponse struct {
	User            *User       `json:"user"`
	IDRelationships int64       `json:"id_relationships,omitempty"`
	Microposts      []Micropost `json:"microposts"`
	TotalCount      int         `json:"total_count"`
}

// UserEditResponse is the body of GET users/{id}/edit.
type UserEditResponse struct {
	User     *User  `json:"user"`
	Gravatar string `json:"gravatar"`
	Flash    *Flash `json:"flash,omitempty"`
}

// UserUpdateResponse is the body of PATCH users/{id}.
type UserUpdateResponse struct {
	FlashSuccess *Flash `json:"flash_success,omitempty"`
}

// UserCreateResponse is the body of POST users (signup).
type UserCreateResponse struct {
	User  *User  `json:"user,omitempty"`
	Flash *Flash `json:"flash,omitempty"`
}

// DeleteResponse is the body of destructive calls that only flash.
type DeleteResponse struct {
	Flash *Flash `json:"flash,omitempty"`
}

// FollowListUser is the profile summary on follower/following pages.
type FollowListUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Followers  int    `json:"followers"`
	Following  int    `json:"following"`
	Gravatar   string `json:"gravatar"`
	Micropost  int    `json:"micropost"`
}

// FollowResponse is the body of GET users/{id}/followers and /following.
type FollowResponse struct {
	Users      []User         `json:"users"`
	TotalCount int            `json:"total_count"`
	User       FollowListUser `json:"user"`
}

// CreateRelationshipResponse is the body of POST relationships.
type CreateRelationshipResponse struct {
	Follow bool `json:"follow"`
}

// DestroyRelationshipResponse is the body of DELETE relationships/{id}.
type DestroyRelationshipResponse struct {
	Unfollow bool `json:"unfollow"`
}

// MicropostResponse is the body of micropost create/delete calls.
type MicropostResponse struct {
	Flash *Flash `json:"flash,omitempty"`
}

// PasswordResetCreateResponse is the body of POST password_resets.
type PasswordResetCreateResponse struct {
	Flash Flash `json:"flash"`
}

// PasswordResetUpdateResponse is the body of PATCH password_resets/{token}.
type PasswordResetUpdateResponse struct {
	UserID string `json:"user_id,omitempty"`
	Flash  *Flash `json:"flash,omitempty"`
}

// ActivationResponse is the body of POST account_activations.
type ActivationResponse struct {
	UserID string `json:"user_id,omitempty"`
	Flash  *Flash `json:"flash,omitempty"`
}

// ActivationUpdateResponse is the body of PATCH account_activations/{token}.
type ActivationUpdateResponse struct {
	User  *User  `json:"user,omitempty"`
	JWT   string `json:"jwt,omitempty"`
	Token string `json:"token,omitempty"`
	Flash Flash  `json:"flash"`
}

// RefreshResponse is the body of POST refresh. Unlike login, the new
// remember token is nested under access.
type RefreshResponse struct {
	Tokens *RefreshTokens `json:"tokens"`
}

// RefreshTokens is the token envelope on a refresh response.
type RefreshTokens struct {
	Access RefreshAccess `json:"access"`
}

// RefreshAccess carries the replacement token pair after a refresh.
type RefreshAccess struct {
	Token         string `json:"token"`
	RememberToken string `json:"remember_token"`
}
