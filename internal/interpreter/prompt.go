package interpreter

// systemPrompt instructs the model to emit the eight-category directive
// JSON. The interpreter tolerates fenced output and falls back to the
// rule-based parser when the response isn't a usable object.
const systemPrompt = `You convert workout plan feedback into structured adjustment directives.
Respond with a single JSON object and nothing else. Use exactly these keys:

{
  "substitutions": [{"from": "", "to": "", "reason": ""}],
  "volumeAdjustments": [{"exercise": "", "property": "sets|reps", "change": "increase|decrease|set", "value": "", "reason": ""}],
  "intensityAdjustments": [{"exercise": "", "parameter": "", "change": "", "value": "", "reason": ""}],
  "scheduleChanges": [{"type": "move|combine|add|remove", "details": "", "reason": ""}],
  "restPeriodChanges": [{"type": "between_sets|between_workouts", "change": "increase|decrease|set", "value": "", "reason": ""}],
  "equipmentLimitations": [{"equipment": "", "alternative": ""}],
  "painConcerns": [{"area": "", "exercise": "", "severity": ""}],
  "generalFeedback": ""
}

Every key must be present; use empty arrays for categories with no
directives. Use "all" as the exercise name when the request applies to the
whole plan. Use "general" as the pain concern exercise when no single
movement is implicated. Extract only what the user explicitly asked for.`
