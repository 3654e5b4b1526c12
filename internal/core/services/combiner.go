package services

import (
	"strings"

	"github.com/chai-engine/promptchain/internal/core/domain"
)

// Section labels in the assembled prompt. Fixed so output is
// reproducible across runs.
const (
	labelVariantA = "VARIABLE A CONTEXT:"
	labelVariantB = "VARIABLE B CONTEXT:"
	labelTask     = "TASK:"
)

// Combine assembles the full prompt for one (A,B) combination.
//
// The concatenation order is fixed:
//
//	{system}
//
//	VARIABLE A CONTEXT:
//	{a}
//
//	VARIABLE B CONTEXT:
//	{b}
//
//	TASK:
//	{task}
//
// Each component is trimmed of surrounding whitespace before
// assembly. Combine is a pure function: identical inputs yield
// byte-identical output. Empty components are permitted and simply
// contribute an empty section body.
func Combine(tpl domain.PromptTemplate, a, b domain.ContextItem) domain.CombinedPrompt {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(tpl.System))
	sb.WriteString("\n\n")
	sb.WriteString(labelVariantA)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(a.Content))
	sb.WriteString("\n\n")
	sb.WriteString(labelVariantB)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(b.Content))
	sb.WriteString("\n\n")
	sb.WriteString(labelTask)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(tpl.Task))

	return domain.CombinedPrompt{
		SourceA: a,
		SourceB: b,
		Text:    sb.String(),
	}
}
