package auth

import (
	"log"
	"net/http"
	"strings"

	"rentaride/internal/repository"
	"rentaride/internal/session"
)

// CookieName is the session cookie set on login and signup.
const CookieName = "rental_session"

type Middleware struct {
	Sessions  session.Store
	Users     repository.UserStore
	JWTSecret string
}

func NewMiddleware(sessions session.Store, users repository.UserStore, jwtSecret string) *Middleware {
	return &Middleware{Sessions: sessions, Users: users, JWTSecret: jwtSecret}
}

// LoadSession guarantees every request carries a session token, opening an
// anonymous session when the cookie is missing or stale, and resolves the
// session's user into a context identity.
func (m *Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := ""
		if cookie, err := r.Cookie(CookieName); err == nil {
			token = cookie.Value
		}

		userID, ok := 0, false
		if token != "" {
			var err error
			userID, ok, err = m.Sessions.UserID(ctx, token)
			if err != nil {
				log.Printf("Error resolving session: %v", err)
			}
		}
		if !ok {
			fresh, err := m.Sessions.Start(ctx)
			if err != nil {
				http.Error(w, "Session unavailable", http.StatusInternalServerError)
				return
			}
			token = fresh
			userID = 0
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(session.Lifetime.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx = WithSessionToken(ctx, token)
		if userID > 0 {
			user, err := m.Users.ByID(userID)
			if err != nil {
				log.Printf("Error loading session user %d: %v", userID, err)
			} else if user != nil {
				ctx = WithIdentity(ctx, Identity{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin})
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser guards the form flows, bouncing anonymous requests to the login page.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			if token := SessionTokenFrom(r.Context()); token != "" {
				m.Sessions.AddFlash(r.Context(), token, session.Flash{Category: "error", Message: "Please log in to access this page"})
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUserAPI guards JSON endpoints with a plain 401.
func (m *Middleware) RequireUserAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin is the capability check for the admin dashboard.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || !id.IsAdmin {
			if token := SessionTokenFrom(r.Context()); token != "" {
				m.Sessions.AddFlash(r.Context(), token, session.Flash{Category: "error", Message: "Admin access required"})
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminToken protects the admin JSON API with a bearer JWT.
func (m *Middleware) RequireAdminToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		id, err := VerifyAdminToken(m.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
