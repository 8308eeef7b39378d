package handlers

import "net/http"

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users          UserStore
	Sessions       SessionManager
	Requests       FriendService
	Graph          GraphService
	Content        ContentService
	Messages       MessageService
	Notifications  NotificationStore
	Attachments    AttachmentStorage
	AuthLimiter    RateLimiter
	MaxUploadBytes int64
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	authHandler := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	users := UserHandler{Users: deps.Users}
	friends := FriendHandler{Requests: deps.Requests, Graph: deps.Graph, Users: deps.Users}
	posts := PostHandler{Content: deps.Content, Graph: deps.Graph, Storage: deps.Attachments, MaxUploadBytes: deps.MaxUploadBytes}
	messages := MessageHandler{Messages: deps.Messages}
	notifications := NotificationHandler{Notifications: deps.Notifications}

	authed := func(next authedFunc) http.HandlerFunc {
		return requireUser(deps.Sessions, deps.Users, next)
	}

	mux.HandleFunc("/healthz", health.Handle)

	mux.HandleFunc("/api/v1/auth/signup", authHandler.SignUp)
	mux.HandleFunc("/api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("/api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("/api/v1/auth/logout", authHandler.Logout)

	mux.HandleFunc("/api/v1/users/me", authed(users.Me))
	mux.HandleFunc("/api/v1/users/profile", authed(users.UpdateProfile))
	mux.HandleFunc("/api/v1/users/search", authed(users.Search))

	mux.HandleFunc("/api/v1/friends", authed(friends.List))
	mux.HandleFunc("/api/v1/friends/requests", authed(friends.Pending))
	mux.HandleFunc("/api/v1/friends/invite", authed(friends.Invite))
	mux.HandleFunc("/api/v1/friends/respond", authed(friends.Respond))

	mux.HandleFunc("/api/v1/posts", authed(posts.Mine))
	mux.HandleFunc("/api/v1/posts/new", authed(posts.Create))
	mux.HandleFunc("/api/v1/posts/get", authed(posts.Get))
	mux.HandleFunc("/api/v1/posts/delete", authed(posts.Delete))
	mux.HandleFunc("/api/v1/posts/like", authed(posts.Like))
	mux.HandleFunc("/api/v1/posts/comment", authed(posts.Comment))
	mux.HandleFunc("/api/v1/feed", authed(posts.Feed))

	mux.HandleFunc("/api/v1/messages", authed(messages.Send))
	mux.HandleFunc("/api/v1/messages/conversation", authed(messages.Conversation))

	mux.HandleFunc("/api/v1/notifications", authed(notifications.List))
}
