package events

import (
	"fmt"
	"strings"
	"time"
)

// MessageTemplateEngine provides dynamic message generation for events.
type MessageTemplateEngine struct {
	templates map[EventReason]string
}

// NewMessageTemplateEngine creates a new message template engine with default templates.
func NewMessageTemplateEngine() *MessageTemplateEngine {
	engine := &MessageTemplateEngine{
		templates: make(map[EventReason]string),
	}
	engine.templates[ReasonHandlerFailed] = "KubeOpsTest {{.Name}} {{.Operation}} handler failed{{if .Error}}: {{.Error}}{{end}}"
	engine.templates[ReasonCollected] = "KubeOpsTest {{.Name}} deleted{{if .Age}} at age {{.Age}}{{end}}"
	return engine
}

// Render produces the message for reason.
func (e *MessageTemplateEngine) Render(reason EventReason, data EventData) string {
	template, exists := e.templates[reason]
	if !exists {
		// Fallback for unknown event reasons
		return fmt.Sprintf("Event: %s for %s", string(reason), data.Name)
	}

	return e.renderTemplate(template, data)
}

// renderTemplate substitutes the EventData fields into template.
// Only {{.Field}} and {{if .Field}}...{{end}} are understood.
func (e *MessageTemplateEngine) renderTemplate(template string, data EventData) string {
	result := e.renderConditional(template, "{{if .Error}}", data.Error != "")
	result = e.renderConditional(result, "{{if .Age}}", data.Age > 0)

	age := ""
	if data.Age > 0 {
		age = data.Age.Round(time.Second).String()
	}

	return strings.NewReplacer(
		"{{.Name}}", data.Name,
		"{{.Operation}}", data.Operation,
		"{{.Error}}", data.Error,
		"{{.Age}}", age,
	).Replace(result)
}

// renderConditional keeps or drops the first block opened by startMarker.
func (e *MessageTemplateEngine) renderConditional(template, startMarker string, condition bool) string {
	const endMarker = "{{end}}"

	startIndex := strings.Index(template, startMarker)
	if startIndex == -1 {
		return template
	}

	endIndex := strings.Index(template[startIndex:], endMarker)
	if endIndex == -1 {
		return template
	}
	endIndex += startIndex

	before := template[:startIndex]
	after := template[endIndex+len(endMarker):]
	if condition {
		return before + template[startIndex+len(startMarker):endIndex] + after
	}
	return before + after
}
