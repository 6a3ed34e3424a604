package search

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const (
	defaultPostVariants = 2
	defaultPostWords    = 80
)

// platformGuidance maps a platform name to structural guidance for a post.
// Unknown platforms get empty guidance; drafting never fails on the platform
// name alone.
var platformGuidance = map[string]string{
	"LinkedIn": "Structure: a catchy headline, 3-5 short bullet points, and " +
		"a closing call to action. Professional but human style.",
	"Instagram": "Structure: a short opening hook, a body of 3-4 sentences, " +
		"and a closing call to action. Simple language, moderate emoji.",
	"X/Twitter": "Structure: a single concise post of at most 40-60 words " +
		"with a hook and a short call to action.",
	"Facebook Page": "Structure: an opening hook, a body of 3-5 sentences " +
		"with clear benefits, and a call to action. Accessible language.",
	"Facebook Group": "Structure: an opening question or prompt for the " +
		"community, 2-3 sentences of context, and an invitation to discuss. " +
		"Conversational style.",
}

const (
	hashtagsInclude = "Include 3-5 relevant hashtags at the end."
	hashtagsExclude = "Do not add hashtags."
)

// The {name} placeholders need f-string rendering; the NewPromptTemplate
// constructor defaults to Go template syntax and would leave them verbatim.
var postTemplate = prompts.PromptTemplate{
	Template: "You are a content strategist. Draft {variants} variants of a " +
		"social media post for {platform}, each around {words} words, on " +
		"this topic: {topic}. Use only accurate information drawn from the " +
		"uploaded documents. Adopt a {tone} tone. {guidance} {hashtags} " +
		"Highlight relevant quotes or figures when the documents contain " +
		"them. Format the result so it is easy to read.",
	InputVariables: []string{"variants", "platform", "words", "topic", "tone", "guidance", "hashtags"},
	TemplateFormat: prompts.TemplateFormatFString,
}

// PostRequest describes a social media post to draft from the documents.
type PostRequest struct {
	// Topic is what the post is about. Required.
	Topic string

	// Platform selects structural guidance, e.g. "LinkedIn" or "X/Twitter".
	// Unknown platforms are accepted and get no extra guidance.
	Platform string

	// Tone is the desired register, e.g. "professional" or "playful".
	Tone string

	// Words is the approximate length of each variant. Default is 80.
	Words int

	// Hashtags asks for 3-5 relevant hashtags at the end of each variant.
	// When false, the instruction explicitly forbids hashtags.
	Hashtags bool

	// Variants is how many alternative drafts to produce. Default is 2.
	Variants int
}

// buildPostPrompt renders the drafting instruction. Deterministic for a
// given request.
func buildPostPrompt(req *PostRequest) (string, error) {
	words := req.Words
	if words < 1 {
		words = defaultPostWords
	}
	variants := req.Variants
	if variants < 1 {
		variants = defaultPostVariants
	}
	hashtags := hashtagsExclude
	if req.Hashtags {
		hashtags = hashtagsInclude
	}

	return postTemplate.Format(map[string]any{
		"variants": variants,
		"platform": req.Platform,
		"words":    words,
		"topic":    req.Topic,
		"tone":     req.Tone,
		"guidance": platformGuidance[req.Platform],
		"hashtags": hashtags,
	})
}

// DraftPosts renders the post instruction for the request and submits it as
// one grounded generation request, exactly like Ask.
func (e *Engine) DraftPosts(ctx context.Context, req *PostRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.Topic) == "" {
		return "", ErrEmptyTopic
	}

	prompt, err := buildPostPrompt(req)
	if err != nil {
		return "", &GenerationError{Op: "post drafting", Err: err}
	}

	e.logger.Debug("drafting posts", "platform", req.Platform, "stores", len(e.stores))

	answer, err := e.gen.GenerateText(ctx, prompt, e.stores)
	if err != nil {
		return "", &GenerationError{Op: "post drafting", Err: err}
	}
	return answer, nil
}
