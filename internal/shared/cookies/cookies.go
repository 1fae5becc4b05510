package cookies

import (
	"net/http"
	"net/url"
	"solar-system-server/internal/shared/config"
	"strings"
)

const SessionCookieName = "scene_session"

func SetSessionCookie(w http.ResponseWriter, token string) {
	cfg := config.GlobalConfig

	cookie := createSessionCookie()
	cookie.Value = token
	cookie.MaxAge = int(cfg.Session.TTL.Seconds())

	http.SetCookie(w, cookie)
}

func ClearSessionCookie(w http.ResponseWriter) {
	cookie := createSessionCookie()
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func createSessionCookie() *http.Cookie {
	cfg := config.GlobalConfig

	return &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		Domain:   extractDomain(cfg.Frontend.URL),
		HttpOnly: true,
		Secure:   cfg.Session.CookieSecure,
		SameSite: parseSameSite(cfg.Session.CookieSameSite),
	}
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := strings.Split(parsedURL.Host, ":")[0]
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSiteStr string) http.SameSite {
	switch sameSiteStr {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
