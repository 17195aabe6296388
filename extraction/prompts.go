package extraction

import (
	"fmt"

	"github.com/archmap-ai/sdk/arch"
)

// promptGuidance gives the per-type instruction sentence embedded in the
// generation prompt. Keys mirror componentKeywords.
var promptGuidance = map[arch.ComponentType]string{
	arch.TypeUserAction:   "Identify the user interaction that initiates this operation, such as a click, tap, or form submission.",
	arch.TypeClientCode:   "Identify the client-side code that handles the interaction and issues the outgoing request.",
	arch.TypeFirewall:     "Identify any network firewall or perimeter filtering the request passes through.",
	arch.TypeWAF:          "Identify any web application firewall inspecting the request for malicious payloads.",
	arch.TypeLoadBalancer: "Identify how incoming traffic is distributed across backend instances.",
	arch.TypeAPIGateway:   "Identify the API gateway responsible for routing, authentication, or rate limiting.",
	arch.TypeAPIEndpoint:  "Identify the specific API endpoint or route that receives the request.",
	arch.TypeBackendLogic: "Identify the server-side business logic that processes the request.",
	arch.TypeDatabase:     "Identify the database or persistent store the operation reads from or writes to.",
	arch.TypeEventHandler: "Identify any asynchronous event handling triggered by the operation.",
	arch.TypeViewUpdate:   "Identify how the client view is updated once the operation completes.",
}

// PromptTemplate returns the instruction string used when a generation
// backend is configured for the given component type. The template always
// demands a strictly JSON-formatted reply so the engine can parse the
// backend's output; without a backend the heuristic result stands on its
// own and the template is informational only. Unknown types have no
// template and yield an empty string.
func PromptTemplate(t arch.ComponentType) string {
	guidance, ok := promptGuidance[t]
	if !ok {
		return ""
	}
	return fmt.Sprintf(
		"You are analyzing software architecture documentation. %s "+
			"Base your answer only on the supplied documents. "+
			"Respond with a single JSON object and nothing else: "+
			`{"hasData": boolean, "confidence": number from 0 to 1, "title": string, "description": string, "sourceExcerpt": string}.`,
		guidance,
	)
}
