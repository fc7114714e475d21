package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecurityOptional                      // Principal resolved when a valid access token is sent
	SecurityRefresh                       // Refresh token required
	SecurityAccess                        // Access token required
)

// EndpointSecurityConfig maps named HTTP routes to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth
	"auth.login":   SecurityPublic,
	"auth.refresh": SecurityRefresh,
	"healthz":      SecurityPublic,
	"media.get":    SecurityPublic,

	// Profile & membership
	"profile.get":       SecurityAccess,
	"profile.update":    SecurityAccess,
	"profile.avatar":    SecurityAccess,
	"membership.get":    SecurityAccess,
	"membership.cancel": SecurityAccess,

	// Matching requests
	"matching.create":   SecurityAccess,
	"matching.sent":     SecurityAccess,
	"matching.received": SecurityAccess,
	"matching.get":      SecurityAccess,
	"matching.accept":   SecurityAccess,
	"matching.reject":   SecurityAccess,
	"matching.cancel":   SecurityAccess,

	// Visit plans
	"visitplans.create":   SecurityAccess,
	"visitplans.mine":     SecurityAccess,
	"visitplans.get":      SecurityAccess,
	"visitplans.update":   SecurityAccess,
	"visitplans.cancel":   SecurityAccess,
	"visitplans.query":    SecurityOptional,
	"visitplans.calendar": SecurityOptional,

	// Notifications
	"notifications.list": SecurityAccess,
	"notifications.read": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
