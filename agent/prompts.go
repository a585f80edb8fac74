package agent

import "github.com/varunisrani/legal/model"

// SystemPrompt is the static legal-analysis persona sent with every provider
// call. Responses are informational only and never legal advice.
const SystemPrompt = `You are a specialized legal analysis AI assistant with expertise in contract law, regulatory compliance, and risk assessment.

Provide detailed, accurate legal analysis while always noting that your responses are for informational purposes only and do not constitute legal advice. Always recommend consulting with a qualified attorney for specific legal matters.

Focus on:
- Contract clause analysis and interpretation
- Legal risk assessment and mitigation strategies
- Regulatory compliance guidance
- Legal terminology explanations
- Industry best practices and recommendations
- Relevant legal precedents and principles

Be thorough, professional, and cite relevant legal principles when applicable. Structure your responses clearly with headings and bullet points where appropriate.`

// Endpoint-specific labels and defaults.
const (
	ContractReviewPrefix  = "CONTRACT REVIEW: "
	RiskAssessmentPrefix  = "LEGAL RISK ASSESSMENT: "
	contractReviewContext = "General contract review - please identify key legal issues, risks, and recommendations"
	riskAssessmentContext = "Comprehensive legal risk evaluation - identify potential liabilities, compliance issues, and mitigation strategies"

	ContractReviewTurnLimit = 3
	RiskAssessmentTurnLimit = 2
)

// BuildUserPrompt concatenates the query text and optional context into the
// provider-facing prompt.
func BuildUserPrompt(text, context string) string {
	prompt := "Legal Analysis Request: " + text
	if context != "" {
		prompt += "\n\nContext: " + context
	}
	prompt += "\n\nPlease provide a comprehensive legal analysis addressing the specific query above."
	return prompt
}

// ContractReviewRequest rewrites a request for the contract-review endpoint.
// It prefixes the text, fills in a default context, and raises the default
// turn limit; caller-supplied values win.
func ContractReviewRequest(req model.LegalQueryRequest) model.LegalQueryRequest {
	context := req.Context
	if context == "" {
		context = contractReviewContext
	}

	return model.LegalQueryRequest{
		Text:      ContractReviewPrefix + req.Text,
		Context:   "Contract Analysis Context: " + context,
		TurnLimit: req.EffectiveTurnLimit(ContractReviewTurnLimit),
	}
}

// RiskAssessmentRequest rewrites a request for the risk-assessment endpoint.
func RiskAssessmentRequest(req model.LegalQueryRequest) model.LegalQueryRequest {
	context := req.Context
	if context == "" {
		context = riskAssessmentContext
	}

	return model.LegalQueryRequest{
		Text:      RiskAssessmentPrefix + req.Text,
		Context:   "Risk Analysis Context: " + context,
		TurnLimit: req.EffectiveTurnLimit(RiskAssessmentTurnLimit),
	}
}
