package generation

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

// Fixed completion parameters for the two text-generation calls.
const (
	planTemperature = 0.7
	planMaxTokens   = 1500

	scriptTemperature = 0.6
	scriptMaxTokens   = 800
)

var toneInstructions = map[domain.Tone]string{
	domain.ToneFast:     "Focus on aggressive, quick-win strategies that can show results in days or weeks. Be direct and action-oriented.",
	domain.ToneBalanced: "Provide a steady, sustainable approach that balances quick wins with long-term growth. Be encouraging and realistic.",
	domain.ToneChill:    "Emphasize a relaxed, low-pressure approach that fits easily into daily life. Be gentle and supportive.",
}

var titleCaser = cases.Title(language.English)

func planSystemPrompt(tone domain.Tone) string {
	instruction, ok := toneInstructions[tone]
	if !ok {
		instruction = toneInstructions[domain.ToneBalanced]
	}
	return fmt.Sprintf(`You are a friendly AI coach helping someone achieve their personal goal. Based on the user's dream, age, time commitment, and current life situation, give a simple, doable step-by-step roadmap they can start today.

%s pace: %s

Focus on realistic, practical, encouraging advice. Split into 3 sections:

1. **Dream Summary** - Summarize their dream in 1-2 sentences
2. **Action Plan** - Provide daily or weekly steps for 1-3 months, broken down into specific, actionable tasks
3. **Motivational Message** - End with an encouraging, personalized message

Be encouraging, not overwhelming. Keep tone human, easy to follow, and personalized to their situation.`,
		titleCaser.String(string(tone)), instruction)
}

func planUserPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(`Here's my dream: %q

About me:
- Age: %s
- Work/School status: %s
- Time I can commit per week: %s
- Current skills/strengths: %s
- Timeline for achievement: %s

Please create a personalized plan for me.`,
		req.DreamText,
		req.Profile.Age,
		req.Profile.WorkStatus,
		req.Profile.TimeCommitment,
		req.Profile.Skills,
		req.Profile.Timeline,
	)
}

const scriptSystemPrompt = `Convert this dream plan into a warm, encouraging voice script that sounds natural when spoken aloud.

Guidelines:
- Use conversational language
- Add natural pauses with commas
- Make it sound like a friendly coach talking directly to the person
- Keep the same structure but make it flow better for audio
- Add encouraging transitions between sections
- Maximum 2 minutes when spoken (about 300 words)`

func scriptUserPrompt(planContent string) string {
	return "Convert this plan to a voice script:\n\n" + planContent
}
