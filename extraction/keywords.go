package extraction

import "github.com/archmap-ai/sdk/arch"

// componentKeywords maps each component type to the evidence vocabulary the
// engine scans for. Terms are matched case-insensitively; single words match
// on word boundaries, phrases as substrings. No term appears under more than
// one type, so a keyword hit always attributes evidence unambiguously.
var componentKeywords = map[arch.ComponentType][]string{
	arch.TypeUserAction: {
		"user", "click", "submit", "interaction", "form input",
	},
	arch.TypeClientCode: {
		"client", "frontend", "browser", "javascript", "react",
	},
	arch.TypeFirewall: {
		"firewall", "packet filtering", "ip blocking", "perimeter", "network rules",
	},
	arch.TypeWAF: {
		"waf", "web application firewall", "owasp", "xss", "request inspection",
	},
	arch.TypeLoadBalancer: {
		"load balancer", "load balancing", "nginx", "haproxy", "round robin",
	},
	arch.TypeAPIGateway: {
		"gateway", "api gateway", "rate limiting", "request routing", "kong",
	},
	arch.TypeAPIEndpoint: {
		"endpoint", "rest", "controller", "url path", "http method",
	},
	arch.TypeBackendLogic: {
		"backend", "business logic", "server-side", "processing", "computation",
	},
	arch.TypeDatabase: {
		"database", "sql", "query", "postgres", "mysql", "data store",
	},
	arch.TypeEventHandler: {
		"event", "listener", "webhook", "trigger", "callback",
	},
	arch.TypeViewUpdate: {
		"render", "view update", "dom", "refresh", "display",
	},
}

// Keywords returns the evidence vocabulary for a component type.
// The returned slice is a copy; it is empty for an unrecognized type.
func Keywords(t arch.ComponentType) []string {
	kws, ok := componentKeywords[t]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}
