package conversation

import (
	"fmt"
	"strings"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
)

// The acknowledgement variants are interchangeable: which one is emitted
// never influences classification or the report pipeline.

var activityAcks = []string{
	"%s %s — great choice!",
	"%s %s sounds wonderful!",
	"Perfect, %s %s it is!",
}

var locationAcks = []string{
	"Got it, %s!",
	"%s — nice pick!",
	"Noted: %s.",
}

const (
	locationPrompt = "Where are you planning to go? Any city or place name works."
	datePrompt     = "What date should I check? Please use the YYYY-MM-DD format."
	analyzingText  = "🔍 Analyzing weather patterns for your plans... one moment."
	invitationText = "Want to plan another adventure? Tell me what activity you have in mind!"
	apologyText    = "I'm sorry — something went wrong while preparing your report. Let's start over: what activity are you planning?"
)

func greetingText() string {
	return fmt.Sprintf(
		"Hi! I'm your outdoor planning assistant. I'll check the weather risks for your plans. What are you planning? (%s)",
		activityList())
}

func clarificationText() string {
	return fmt.Sprintf(
		"I didn't catch an activity there. I can help you plan: %s. Which one are you thinking of?",
		activityList())
}

func activityAckText(pick func(n int) int, act activity.Type) string {
	template := activityAcks[pick(len(activityAcks))]
	return fmt.Sprintf(template, act.Emoji(), act.Label()) + " " + locationPrompt
}

func locationAckText(pick func(n int) int, location string) string {
	template := locationAcks[pick(len(locationAcks))]
	return fmt.Sprintf(template, location) + " " + datePrompt
}

func activityList() string {
	parts := make([]string, 0, len(activity.All))
	for _, act := range activity.All {
		parts = append(parts, act.Label()+" "+act.Emoji())
	}
	return strings.Join(parts, ", ")
}
