package resolve

import (
	"regexp"
	"strings"
)

// Intent is the task class inferred from a natural-language request.
type Intent string

const (
	IntentSaveScene           Intent = "save_scene"
	IntentSaveNotes           Intent = "save_notes"
	IntentStartWork           Intent = "start_work"
	IntentReplaceScene        Intent = "replace_scene"
	IntentUpdateOutline       Intent = "update_outline"
	IntentReviseScene         Intent = "revise_scene"
	IntentOutline             Intent = "outline"
	IntentWorldbuildMechanics Intent = "worldbuild_mechanics"
	IntentCompileArtifacts    Intent = "compile_artifacts"
	IntentExportPackOnly      Intent = "export_pack_only"
	IntentBrainstorm          Intent = "brainstorm"
)

type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// Ordered rule table, first match wins. This is deliberately a heuristic
// pattern table, not a parser.
var intentRules = []intentRule{
	{IntentSaveScene, regexp.MustCompile(`save this as a scene|add scene|place this as a scene`)},
	{IntentSaveNotes, regexp.MustCompile(`save notes|highlights of this chat|capture notes`)},
	{IntentStartWork, regexp.MustCompile(`start a new (short story|novella|novel)|create work`)},
	{IntentReplaceScene, regexp.MustCompile(`replace the scene|overwrite scene with this revision`)},
	{IntentUpdateOutline, regexp.MustCompile(`save these changes to the outline|update outline`)},
	{IntentReviseScene, regexp.MustCompile(`revise|rewrite|insert|line[- ]?edit|edit\b`)},
	{IntentOutline, regexp.MustCompile(`outline|beatsheet|beat[- ]?sheet|structure|three[- ]?act|act\b|synopsis`)},
	{IntentWorldbuildMechanics, regexp.MustCompile(`mechanic|rule|system|physics|magic|memory corridor|ftl|rule(s)?\b|mechanics\b`)},
	{IntentCompileArtifacts, regexp.MustCompile(`compile|build (bible|epub|pdf)|publish|generate bible|rag export`)},
	{IntentExportPackOnly, regexp.MustCompile(`prompt pack|context pack|export pack|pack only`)},
	{IntentBrainstorm, regexp.MustCompile(`brainstorm|ideas?|concepts?|pitch|logline|seed`)},
}

var narrativeFallback = regexp.MustCompile(`scene|chapter|novella|novel|story`)

// Classify maps a request onto an intent. Unmatched narrative-ish requests
// fall back to outline, everything else to brainstorm.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, rule := range intentRules {
		if rule.pattern.MatchString(q) {
			return rule.intent
		}
	}
	if narrativeFallback.MatchString(q) {
		return IntentOutline
	}
	return IntentBrainstorm
}
