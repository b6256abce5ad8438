// Prompt templates and placeholder substitution.
//
// Information Hiding:
// - Default template texts and the size-constraint wrapper
// - Escalation order of the regeneration templates
package summarize

import (
	"fmt"
	"strings"

	"github.com/richinex/procrustes/size"
)

// defaultSummaryPrompt serves the map, stuff, combine and initial-refine
// generation sites.
const defaultSummaryPrompt = "Write a concise summary of the following:\n\n{text}\n\nCONCISE SUMMARY:"

// defaultRefinePrompt folds new context into an existing summary.
const defaultRefinePrompt = `Your job is to produce a final summary.
We have provided an existing summary up to a certain point: "{existing_answer}"
We have the opportunity to refine the existing summary (only if needed) with some more context below.
------------
{text}
------------
Given the new context, refine the original summary.
If the context isn't useful, return the original summary.`

// Size-constraint wrapper applied to default templates when a budget is
// configured. The wording is stable so downstream consumers can detect
// governed prompts.
const (
	sizeConstraintPreamble  = "IMPORTANT: Your answer must stay within a hard limit of %d %s.\n\n"
	sizeConstraintPostamble = "\n\nHard limit: %d %s. Prefer short sentences and drop minor details rather than exceed it."
)

// retryTemplates escalate in strictness. Regeneration attempt n uses the
// template at index min(n-1, 2).
var retryTemplates = [...]string{
	"The summary below is too long. Rewrite it as a concise summary of at most %d %s:\n\n{text}\n\nCONCISE SUMMARY:",
	"The summary below is still too long. Rewrite it in telegraphic style, using sentence fragments and dropping filler words, within %d %s:\n\n{text}\n\nSHORTENED SUMMARY:",
	"The summary below must shrink drastically. Return only the essential keywords and phrases, comma separated, within %d %s:\n\n{text}\n\nKEYWORDS:",
}

// renderPrompt substitutes {name} placeholders in template in a single
// pass. Substituted values are never rescanned, so placeholder tokens
// occurring inside document content survive literally.
func renderPrompt(template string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// retryPrompt renders the regeneration prompt for the given attempt.
func retryPrompt(text string, attempt, maxSize int, unit size.Unit) string {
	idx := attempt - 1
	if idx >= len(retryTemplates) {
		idx = len(retryTemplates) - 1
	}
	template := fmt.Sprintf(retryTemplates[idx], maxSize, unit)
	return renderPrompt(template, map[string]string{"text": text})
}

// summaryPrompt renders the prompt for a single-text generation site.
// A custom template is used as given; the default is wrapped with the
// size constraint when a budget is configured.
func (c *Chain) summaryPrompt(custom, text string) string {
	template := custom
	if template == "" {
		template = c.wrapSizeConstraint(defaultSummaryPrompt)
	}
	return renderPrompt(template, map[string]string{"text": text})
}

// refinePrompt renders the prompt folding text into the existing summary.
func (c *Chain) refinePrompt(existing, text string) string {
	template := c.cfg.Prompts.Refine
	if template == "" {
		template = c.wrapSizeConstraint(defaultRefinePrompt)
	}
	return renderPrompt(template, map[string]string{
		"existing_answer": existing,
		"text":            text,
	})
}

// wrapSizeConstraint brackets a default template with the budget statement.
func (c *Chain) wrapSizeConstraint(template string) string {
	if !c.cfg.Governed() {
		return template
	}
	pre := fmt.Sprintf(sizeConstraintPreamble, c.cfg.MaxOutputSize, c.cfg.SizeUnit)
	post := fmt.Sprintf(sizeConstraintPostamble, c.cfg.MaxOutputSize, c.cfg.SizeUnit)
	return pre + template + post
}
