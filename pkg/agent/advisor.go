package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type ComplianceStatus string

const (
	StatusOK     ComplianceStatus = "ok"
	StatusReview ComplianceStatus = "review"
)

// Compliance is the verdict attached to a draft. Issues are data, not errors.
type Compliance struct {
	Status ComplianceStatus `json:"status"`
	Issues []string         `json:"issues"`
}

type Advice struct {
	Suggestions []string   `json:"_ai_suggestions"`
	Compliance  Compliance `json:"_compliance"`
}

const (
	maxSuggestions = 6
	minSuggestions = 3
)

const (
	suggestConfirmMaterials = "Confirm materials were received and answer any follow-up questions"
	suggestShareBrochure    = "Share brochure/clinical highlights for discussed products"
	suggestObjections       = "Address objections and share evidence/clinical study summary"
	suggestFollowUp         = "Schedule next follow-up in 2 weeks"
)

var riskyClaims = []string{"guarantee", "100% effective", "cure", "permanent", "no side effects"}

var riskyClaimPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(riskyClaims))
	for i, w := range riskyClaims {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}()

// Advisor derives follow-up suggestions and a compliance verdict for a draft.
// The model call is best effort; the deterministic rules always run.
type Advisor struct {
	completer Completer
	logger    Logger
}

func NewAdvisor(completer Completer, logger Logger) *Advisor {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Advisor{completer: completer, logger: logger}
}

// advisorView is the reduced draft sent to the model.
type advisorView struct {
	HCPName            string `json:"hcp_name"`
	InteractionType    string `json:"interaction_type"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Sentiment          string `json:"sentiment"`
	ProductsDiscussed  string `json:"products_discussed"`
	MaterialsShared    string `json:"materials_shared"`
	SamplesDistributed string `json:"samples_distributed"`
	TopicsDiscussed    string `json:"topics_discussed"`
	Summary            string `json:"summary"`
	Outcomes           string `json:"outcomes"`
	FollowUps          string `json:"follow_ups"`
	UsedVoiceNote      bool   `json:"used_voice_note"`
	ConsentRequired    bool   `json:"consent_required"`
}

func newAdvisorView(d Draft) advisorView {
	return advisorView{
		HCPName:            d.HCPName,
		InteractionType:    d.InteractionType,
		Date:               d.Date,
		Time:               d.Time,
		Sentiment:          d.Sentiment,
		ProductsDiscussed:  d.ProductsDiscussed,
		MaterialsShared:    d.MaterialsShared,
		SamplesDistributed: d.SamplesDistributed,
		TopicsDiscussed:    d.TopicsDiscussed,
		Summary:            d.Summary,
		Outcomes:           d.Outcomes,
		FollowUps:          d.FollowUps,
		UsedVoiceNote:      d.UsedVoiceNote,
		ConsentRequired:    d.ConsentRequired,
	}
}

// Advise never returns empty suggestions. The only error it returns is the
// context's own when the caller gave up.
func (a *Advisor) Advise(ctx context.Context, draft Draft, hcpContext map[string]any) (Advice, error) {
	data := map[string]any{}

	if a.completer != nil {
		raw, err := a.complete(ctx, draft, hcpContext)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Advice{}, ctxErr
			}
			a.logger.Warn(logModule, "Advisor model call failed, using deterministic advice", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			data = ParseJSON(raw)
		}
	}

	suggestions := dedupe(stringList(data["_ai_suggestions"]))
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	comp, _ := data["_compliance"].(map[string]any)
	issues := dedupe(stringList(comp["issues"]))
	status, _ := comp["status"].(string)

	forced := false
	if draft.UsedVoiceNote && !draft.ConsentRequired {
		issues = appendUnique(issues, ConsentIssue)
		forced = true
	}
	for _, claim := range ScanRiskyClaims(draft) {
		issues = appendUnique(issues, fmt.Sprintf(riskyClaimTemplate, claim))
		forced = true
	}

	verdict := ComplianceStatus(strings.ToLower(strings.TrimSpace(status)))
	switch {
	case forced:
		verdict = StatusReview
	case verdict != StatusOK && verdict != StatusReview:
		if len(issues) == 0 {
			verdict = StatusOK
		} else {
			verdict = StatusReview
		}
	}

	if len(suggestions) < minSuggestions {
		suggestions = withFallbackSuggestions(suggestions, draft)
	}
	if issues == nil {
		issues = []string{}
	}

	return Advice{
		Suggestions: suggestions,
		Compliance:  Compliance{Status: verdict, Issues: issues},
	}, nil
}

func (a *Advisor) complete(ctx context.Context, draft Draft, hcpContext map[string]any) (string, error) {
	if hcpContext == nil {
		hcpContext = map[string]any{}
	}
	payload, err := json.Marshal(map[string]any{
		"draft":   newAdvisorView(draft),
		"context": hcpContext,
	})
	if err != nil {
		return "", fmt.Errorf("encode advisor payload: %w", err)
	}
	return a.completer.Complete(ctx, AdvisorSystemPrompt, string(payload))
}

// ScanRiskyClaims returns the risky phrases found in the free-text fields of
// the draft, in a fixed order.
func ScanRiskyClaims(d Draft) []string {
	text := strings.Join([]string{d.Summary, d.Outcomes, d.TopicsDiscussed}, "\n")
	var found []string
	for i, re := range riskyClaimPatterns {
		if re.MatchString(text) {
			found = append(found, riskyClaims[i])
		}
	}
	return found
}

func withFallbackSuggestions(current []string, d Draft) []string {
	out := append([]string(nil), current...)
	switch {
	case strings.TrimSpace(d.MaterialsShared) != "":
		out = append(out, suggestConfirmMaterials)
	case strings.TrimSpace(d.ProductsDiscussed) != "":
		out = append(out, suggestShareBrochure)
	}
	switch strings.ToLower(strings.TrimSpace(d.Sentiment)) {
	case "neutral", "negative":
		out = append(out, suggestObjections)
	}
	out = append(out, suggestFollowUp)

	out = dedupe(out)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// stringList keeps the non-blank entries of a JSON array. Anything that is
// not an array yields nil.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := coerceString(item)
		if s == nil {
			continue
		}
		if t := strings.TrimSpace(*s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
