package agent

import (
	"fmt"
	"strings"

	"github.com/varunisrani/legal/model"
)

// Canned response bodies for the two degraded states. Both embed the literal
// submitted query so the caller can see what was received, and both carry the
// standing not-legal-advice note.

func setupRequiredText(req model.LegalQueryRequest) string {
	var b strings.Builder

	b.WriteString("**Legal Analysis Setup Required**\n\n")
	b.WriteString("Your legal analysis API is deployed and running, but requires authentication configuration.\n\n")
	b.WriteString("**To enable full legal analysis:**\n")
	b.WriteString("1. Set the ANTHROPIC_API_KEY environment variable\n")
	b.WriteString("2. Get your API key from https://console.anthropic.com/\n")
	b.WriteString("3. Restart or redeploy the service after adding the key\n\n")

	fmt.Fprintf(&b, "**Your Query:** %s\n", req.Text)
	if req.Context != "" {
		fmt.Fprintf(&b, "**Context:** %s\n", req.Context)
	}

	b.WriteString("\n**What this API will provide once configured:**\n")
	b.WriteString("- Professional legal analysis\n")
	b.WriteString("- Contract clause review and risk assessment\n")
	b.WriteString("- Regulatory compliance guidance\n")
	b.WriteString("- Legal terminology explanations\n")
	b.WriteString("- Best practices recommendations\n\n")
	b.WriteString("**Note:** All responses are for informational purposes only and do not constitute legal advice. Always consult with a qualified attorney for specific legal matters.")

	return b.String()
}

func providerErrorText(err error, req model.LegalQueryRequest) string {
	var b strings.Builder

	b.WriteString("**Legal Analysis Service Error**\n\n")
	fmt.Fprintf(&b, "An error occurred while processing your legal query: %s\n\n", err.Error())

	fmt.Fprintf(&b, "**Your Query:** %s\n", req.Text)
	if req.Context != "" {
		fmt.Fprintf(&b, "**Context:** %s\n", req.Context)
	}

	b.WriteString("\n**Troubleshooting Steps:**\n")
	b.WriteString("1. Verify ANTHROPIC_API_KEY is set and valid\n")
	b.WriteString("2. Check the key has sufficient credits\n")
	b.WriteString("3. Ensure network connectivity to Anthropic servers\n\n")
	b.WriteString("**For immediate legal assistance, please consult with a qualified attorney.**")

	return b.String()
}
